package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SiteSettings — настройки сайта (точки выдачи).
//
// Для планировщика важны три поля: AutoDeleteHour, AutoDeleteMinute и
// AutoDeleteEnabled. Живые jobs не персистятся — при старте процесса
// реестр пересобирает их из этих настроек.
type SiteSettings struct {
	// ID — уникальный идентификатор сайта.
	ID uuid.UUID `json:"id"`

	// Name — название сайта (например, "Mensa Nord").
	Name string `json:"name"`

	// AutoDeleteHour — час срабатывания reset job'а, 0..23.
	AutoDeleteHour int `json:"auto_delete_hour"`

	// AutoDeleteMinute — минута срабатывания, 0..59.
	AutoDeleteMinute int `json:"auto_delete_minute"`

	// AutoDeleteEnabled — включён ли ежедневный reset.
	AutoDeleteEnabled bool `json:"auto_delete_enabled"`

	// CreatedAt — время создания сайта.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время последнего обновления настроек.
	UpdatedAt time.Time `json:"updated_at"`
}

// CronSpec возвращает cron-выражение для ежедневного срабатывания.
//
// Формат: "минута час * * *" — каждый день в указанное время,
// без фильтра по дням недели.
func (s *SiteSettings) CronSpec() string {
	return fmt.Sprintf("%d %d * * *", s.AutoDeleteMinute, s.AutoDeleteHour)
}

// ValidateTriggerTime проверяет, что (hour, minute) — валидное время.
func ValidateTriggerTime(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return fmt.Errorf("hour out of range [0,23]: %d", hour)
	}
	if minute < 0 || minute > 59 {
		return fmt.Errorf("minute out of range [0,59]: %d", minute)
	}
	return nil
}
