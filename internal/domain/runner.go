package domain

import (
	"github.com/google/uuid"
)

// RunnerRef — ссылка на выбранного runner'а (идентификатор + имя).
//
// Пустой RunnerRef (ID == uuid.Nil) означает "runner не назначен".
type RunnerRef struct {
	// ID — идентификатор аккаунта runner'а.
	ID uuid.UUID `json:"id"`

	// DisplayName — отображаемое имя на момент выбора.
	DisplayName string `json:"display_name"`
}

// IsZero возвращает true, если ссылка пустая (runner не назначен).
func (r RunnerRef) IsZero() bool {
	return r.ID == uuid.Nil
}

// RunnerRecord — состояние runner'а для пары (rank, site).
//
// Одна запись на пару, создаётся лениво при первом обращении.
//
// Инварианты:
//   - Current и Last никогда не совпадают, кроме случая, когда пул
//     кандидатов состоял ровно из одного человека.
//   - Last заполняется ТОЛЬКО ротацией reset job'а (Current → Last),
//     путь выбора её не трогает.
type RunnerRecord struct {
	// SiteID — сайт (точка выдачи).
	SiteID uuid.UUID `json:"site_id"`

	// Rank — когорта.
	Rank Rank `json:"rank"`

	// Current — runner текущего цикла. Пустой, если ещё не выбран.
	Current RunnerRef `json:"current"`

	// Last — runner предыдущего цикла. Исключается из пула при
	// следующем выборе (пока исключение не опустошает пул).
	Last RunnerRef `json:"last"`
}

// HasCurrent возвращает true, если runner текущего цикла назначен.
func (r *RunnerRecord) HasCurrent() bool {
	return !r.Current.IsZero()
}

// Rotate переносит Current в Last и очищает Current.
//
// Запись с пустым Current не меняется: её старый Last переживает
// цикл, пока его не перезапишет следующая ротация.
func (r *RunnerRecord) Rotate() {
	if !r.HasCurrent() {
		return
	}
	r.Last = r.Current
	r.Current = RunnerRef{}
}
