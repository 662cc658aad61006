package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Sites
	mux.Handle("GET /api/v1/sites", chain(http.HandlerFunc(h.ListSites)))
	mux.Handle("POST /api/v1/sites", chain(http.HandlerFunc(h.CreateSite)))
	mux.Handle("GET /api/v1/sites/{site_id}", chain(http.HandlerFunc(h.GetSite)))
	mux.Handle("DELETE /api/v1/sites/{site_id}", chain(http.HandlerFunc(h.DeleteSite)))

	// Schedules
	mux.Handle("GET /api/v1/sites/{site_id}/schedule", chain(http.HandlerFunc(h.GetSchedule)))
	mux.Handle("PUT /api/v1/sites/{site_id}/schedule", chain(http.HandlerFunc(h.UpdateSchedule)))

	// Runners
	mux.Handle("POST /api/v1/sites/{site_id}/ranks/{rank}/runner", chain(http.HandlerFunc(h.DrawRunner)))
	mux.Handle("GET /api/v1/sites/{site_id}/ranks/{rank}/runner", chain(http.HandlerFunc(h.GetRunnerState)))
	mux.Handle("PUT /api/v1/sites/{site_id}/ranks/{rank}/runner", chain(http.HandlerFunc(h.AssignRunner)))

	// Ordered flags
	mux.Handle("POST /api/v1/sites/{site_id}/ranks/{rank}/ordered", chain(http.HandlerFunc(h.SetOrdered)))
	mux.Handle("GET /api/v1/ranks/{rank}/ordered", chain(http.HandlerFunc(h.ListOrdered)))

	// Accounts
	mux.Handle("POST /api/v1/accounts", chain(http.HandlerFunc(h.CreateAccount)))
	mux.Handle("GET /api/v1/accounts/{account_id}", chain(http.HandlerFunc(h.GetAccount)))

	// Orders
	mux.Handle("POST /api/v1/orders", chain(http.HandlerFunc(h.CreateOrder)))
	mux.Handle("GET /api/v1/sites/{site_id}/orders", chain(http.HandlerFunc(h.ListOrders)))
}
