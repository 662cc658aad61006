package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order — заказ пользователя на сайте в текущем цикле.
//
// Core работает с заказами только в двух местах: Candidate Resolver
// смотрит, кто заказывал на сайте, а reset job чистит все заказы
// сайта при ротации.
type Order struct {
	// ID — уникальный идентификатор заказа.
	ID uuid.UUID `json:"id"`

	// AccountID — кто заказал.
	AccountID uuid.UUID `json:"account_id"`

	// SiteID — на каком сайте.
	SiteID uuid.UUID `json:"site_id"`

	// Item — название позиции меню.
	Item string `json:"item"`

	// Comment — комментарий к заказу (опционально).
	Comment string `json:"comment,omitempty"`

	// CreatedAt — время создания заказа.
	CreatedAt time.Time `json:"created_at"`
}

// Token — токен аутентификации.
//
// Reset job удаляет токены старше суток; сами токены создаёт и
// проверяет внешний auth-слой, здесь они только чистятся.
type Token struct {
	// ID — уникальный идентификатор токена.
	ID uuid.UUID `json:"id"`

	// AccountID — владелец токена.
	AccountID uuid.UUID `json:"account_id"`

	// ActiveSince — время выдачи.
	ActiveSince time.Time `json:"active_since"`
}
