package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
	"github.com/shaiso/Mensa/internal/selection"
)

// DrawRunner выбирает runner'а для пары (rank, site) взвешенным
// случайным выбором и сохраняет его как current.
// POST /api/v1/sites/{site_id}/ranks/{rank}/runner
func (h *Handler) DrawRunner(w http.ResponseWriter, r *http.Request) {
	siteID, rank, ok := h.runnerKey(w, r)
	if !ok {
		return
	}

	ref, err := h.selector.SelectRunner(r.Context(), rank, siteID)
	if err != nil {
		if errors.Is(err, selection.ErrNoCandidates) {
			NoCandidates(w)
			return
		}
		InternalError(w, h.logger, err)
		return
	}

	Success(w, RunnerResponse{ID: ref.ID, DisplayName: ref.DisplayName})
}

// GetRunnerState возвращает состояние runner'ов пары (rank, site):
// текущего и последнего. Чтение без побочных эффектов.
// GET /api/v1/sites/{site_id}/ranks/{rank}/runner
func (h *Handler) GetRunnerState(w http.ResponseWriter, r *http.Request) {
	siteID, rank, ok := h.runnerKey(w, r)
	if !ok {
		return
	}

	rec, err := h.selector.GetRunnerState(r.Context(), rank, siteID)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, RunnerStateFromDomain(rec))
}

// AssignRunner назначает runner'а напрямую: пользователь сам
// вызвался бежать.
// PUT /api/v1/sites/{site_id}/ranks/{rank}/runner
func (h *Handler) AssignRunner(w http.ResponseWriter, r *http.Request) {
	siteID, rank, ok := h.runnerKey(w, r)
	if !ok {
		return
	}

	var req AssignRunnerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.AccountID == uuid.Nil {
		BadRequest(w, "account_id is required")
		return
	}

	account, err := h.accounts.GetByID(r.Context(), req.AccountID)
	if HandleRepoError(w, h.logger, err, "account not found") {
		return
	}

	ref := domain.RunnerRef{ID: account.ID, DisplayName: account.DisplayName()}
	if err := h.selector.AssignRunner(r.Context(), rank, siteID, ref); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Success(w, RunnerResponse{ID: ref.ID, DisplayName: ref.DisplayName})
}

// SetOrdered помечает пару (rank, site): заказ цикла отправлен.
// POST /api/v1/sites/{site_id}/ranks/{rank}/ordered
func (h *Handler) SetOrdered(w http.ResponseWriter, r *http.Request) {
	siteID, rank, ok := h.runnerKey(w, r)
	if !ok {
		return
	}

	if err := h.runners.SetOrdered(r.Context(), rank, siteID); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	NoContent(w)
}

// ListOrdered возвращает сайты, помеченные рангом как "заказано".
// GET /api/v1/ranks/{rank}/ordered
func (h *Handler) ListOrdered(w http.ResponseWriter, r *http.Request) {
	rank := domain.Rank(r.PathValue("rank"))
	if rank == "" {
		BadRequest(w, "rank is required")
		return
	}

	ids, err := h.runners.ListOrdered(r.Context(), rank)
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	List(w, ids, len(ids))
}

// runnerKey извлекает (site_id, rank) из пути запроса.
func (h *Handler) runnerKey(w http.ResponseWriter, r *http.Request) (uuid.UUID, domain.Rank, bool) {
	siteID, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		BadRequest(w, "invalid site_id")
		return uuid.Nil, "", false
	}
	rank := domain.Rank(r.PathValue("rank"))
	if rank == "" {
		BadRequest(w, "rank is required")
		return uuid.Nil, "", false
	}
	return siteID, rank, true
}
