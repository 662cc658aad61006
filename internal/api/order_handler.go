package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

// CreateOrder создаёт заказ текущего цикла.
// POST /api/v1/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.AccountID == uuid.Nil {
		BadRequest(w, "account_id is required")
		return
	}
	if req.SiteID == uuid.Nil {
		BadRequest(w, "site_id is required")
		return
	}
	if req.Item == "" {
		BadRequest(w, "item is required")
		return
	}

	// Аккаунт и сайт должны существовать: заказ с висячими ссылками
	// сломал бы подсчёт кандидатов.
	_, err := h.accounts.GetByID(r.Context(), req.AccountID)
	if HandleRepoError(w, h.logger, err, "account not found") {
		return
	}
	_, err = h.siteRepo.GetByID(r.Context(), req.SiteID)
	if HandleRepoError(w, h.logger, err, "site not found") {
		return
	}

	order := &domain.Order{
		ID:        uuid.New(),
		AccountID: req.AccountID,
		SiteID:    req.SiteID,
		Item:      req.Item,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}
	if err := h.orderRepo.Create(r.Context(), order); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Created(w, OrderFromDomain(order))
}

// ListOrders возвращает заказы сайта в текущем цикле.
// GET /api/v1/sites/{site_id}/orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.siteID(w, r)
	if !ok {
		return
	}

	orders, err := h.orderRepo.FindActiveAtSite(r.Context(), siteID)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, OrderFromDomain(&orders[i]))
	}
	List(w, resp, len(resp))
}
