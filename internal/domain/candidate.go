package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rank — когорта пользователей (например, год обучения: "IT1", "IT2").
//
// Rank разделяет пулы кандидатов: у каждой пары (rank, site) свой
// текущий runner и своя ротация.
type Rank string

// Candidate — кандидат на роль runner'а.
//
// Это проекция аккаунта пользователя: только то, что нужно для
// взвешенного выбора. RunCount — счётчик честности (fairness counter):
// сколько раз кандидат уже был выбран runner'ом.
type Candidate struct {
	// ID — идентификатор аккаунта.
	ID uuid.UUID `json:"id"`

	// DisplayName — отображаемое имя ("Имя Фамилия").
	DisplayName string `json:"display_name"`

	// RunCount — сколько раз кандидат уже бегал.
	// Инкрементируется ТОЛЬКО reset job'ом (+1 за цикл на сайт),
	// никогда — самим выбором.
	RunCount int `json:"run_count"`
}

// Account — аккаунт пользователя (полная запись в хранилище).
//
// Pending=true — аккаунт создан, но ещё не активирован.
// Такие аккаунты reset job удаляет через 3 дня.
type Account struct {
	// ID — уникальный идентификатор аккаунта.
	ID uuid.UUID `json:"id"`

	// Forename, Surname — имя и фамилия.
	Forename string `json:"forename"`
	Surname  string `json:"surname"`

	// Rank — когорта пользователя.
	Rank Rank `json:"rank"`

	// Pending — аккаунт ещё не активирован.
	Pending bool `json:"pending"`

	// RunCount — глобальный счётчик честности.
	RunCount int `json:"run_count"`

	// CreatedAt — время создания аккаунта.
	CreatedAt time.Time `json:"created_at"`
}

// DisplayName возвращает отображаемое имя аккаунта.
func (a *Account) DisplayName() string {
	return a.Forename + " " + a.Surname
}

// AsCandidate возвращает проекцию аккаунта для выбора runner'а.
func (a *Account) AsCandidate() Candidate {
	return Candidate{
		ID:          a.ID,
		DisplayName: a.DisplayName(),
		RunCount:    a.RunCount,
	}
}
