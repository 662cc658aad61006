package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
	"github.com/shaiso/Mensa/internal/registry"
)

// Runner DTOs

// RunnerResponse — выбранный runner.
type RunnerResponse struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// RunnerStateResponse — состояние runner'ов пары (rank, site).
type RunnerStateResponse struct {
	SiteID  uuid.UUID       `json:"site_id"`
	Rank    domain.Rank     `json:"rank"`
	Current *RunnerResponse `json:"current,omitempty"`
	Last    *RunnerResponse `json:"last,omitempty"`
}

// RunnerStateFromDomain конвертирует RunnerRecord в ответ.
func RunnerStateFromDomain(rec *domain.RunnerRecord) RunnerStateResponse {
	resp := RunnerStateResponse{SiteID: rec.SiteID, Rank: rec.Rank}
	if !rec.Current.IsZero() {
		resp.Current = &RunnerResponse{ID: rec.Current.ID, DisplayName: rec.Current.DisplayName}
	}
	if !rec.Last.IsZero() {
		resp.Last = &RunnerResponse{ID: rec.Last.ID, DisplayName: rec.Last.DisplayName}
	}
	return resp
}

// AssignRunnerRequest — пользователь сам вызывается бежать.
type AssignRunnerRequest struct {
	AccountID uuid.UUID `json:"account_id"`
}

// Schedule DTOs

// UpdateScheduleRequest — новое расписание reset job'а сайта.
type UpdateScheduleRequest struct {
	Hour    int  `json:"hour"`
	Minute  int  `json:"minute"`
	Enabled bool `json:"enabled"`
}

// ScheduleResponse — расписание сайта: персистентные настройки
// плюс живое состояние job'а из реестра.
type ScheduleResponse struct {
	SiteID  uuid.UUID      `json:"site_id"`
	Hour    int            `json:"hour"`
	Minute  int            `json:"minute"`
	Enabled bool           `json:"enabled"`
	State   registry.State `json:"state"`
	NextRun *time.Time     `json:"next_run,omitempty"`
}

// Site DTOs

// CreateSiteRequest — запрос на создание сайта.
type CreateSiteRequest struct {
	Name    string `json:"name"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Enabled bool   `json:"enabled"`
}

// SiteResponse — ответ с настройками сайта.
type SiteResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteFromDomain конвертирует domain.SiteSettings в SiteResponse.
func SiteFromDomain(s *domain.SiteSettings) SiteResponse {
	return SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Hour:      s.AutoDeleteHour,
		Minute:    s.AutoDeleteMinute,
		Enabled:   s.AutoDeleteEnabled,
		CreatedAt: s.CreatedAt,
	}
}

// Account DTOs

// CreateAccountRequest — регистрация аккаунта.
type CreateAccountRequest struct {
	Forename string `json:"forename"`
	Surname  string `json:"surname"`
	Rank     string `json:"rank"`
}

// AccountResponse — ответ с аккаунтом.
type AccountResponse struct {
	ID        uuid.UUID   `json:"id"`
	Forename  string      `json:"forename"`
	Surname   string      `json:"surname"`
	Rank      domain.Rank `json:"rank"`
	Pending   bool        `json:"pending"`
	RunCount  int         `json:"run_count"`
	CreatedAt time.Time   `json:"created_at"`
}

// AccountCreatedResponse — аккаунт плюс регистрационный токен.
// Токен отдаётся один раз, при создании.
type AccountCreatedResponse struct {
	Account AccountResponse `json:"account"`
	Token   uuid.UUID       `json:"token"`
}

// AccountFromDomain конвертирует domain.Account в AccountResponse.
func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Forename:  a.Forename,
		Surname:   a.Surname,
		Rank:      a.Rank,
		Pending:   a.Pending,
		RunCount:  a.RunCount,
		CreatedAt: a.CreatedAt,
	}
}

// Order DTOs

// CreateOrderRequest — запрос на создание заказа.
type CreateOrderRequest struct {
	AccountID uuid.UUID `json:"account_id"`
	SiteID    uuid.UUID `json:"site_id"`
	Item      string    `json:"item"`
	Comment   string    `json:"comment,omitempty"`
}

// OrderResponse — ответ с заказом.
type OrderResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	SiteID    uuid.UUID `json:"site_id"`
	Item      string    `json:"item"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderFromDomain конвертирует domain.Order в OrderResponse.
func OrderFromDomain(o *domain.Order) OrderResponse {
	return OrderResponse{
		ID:        o.ID,
		AccountID: o.AccountID,
		SiteID:    o.SiteID,
		Item:      o.Item,
		Comment:   o.Comment,
		CreatedAt: o.CreatedAt,
	}
}
