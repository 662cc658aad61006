package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

// CreateAccount регистрирует аккаунт. Аккаунт создаётся как pending
// вместе с регистрационным токеном; неактивированные аккаунты и
// старые токены вычищает reset job.
// POST /api/v1/accounts
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.Forename == "" || req.Surname == "" {
		BadRequest(w, "forename and surname are required")
		return
	}
	if req.Rank == "" {
		BadRequest(w, "rank is required")
		return
	}

	account := &domain.Account{
		ID:        uuid.New(),
		Forename:  req.Forename,
		Surname:   req.Surname,
		Rank:      domain.Rank(req.Rank),
		Pending:   true,
		CreatedAt: time.Now(),
	}
	if err := h.accounts.Create(r.Context(), account); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	token := &domain.Token{
		ID:          uuid.New(),
		AccountID:   account.ID,
		ActiveSince: time.Now(),
	}
	if err := h.tokens.Create(r.Context(), token); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Created(w, AccountCreatedResponse{
		Account: AccountFromDomain(account),
		Token:   token.ID,
	})
}

// GetAccount возвращает аккаунт по ID.
// GET /api/v1/accounts/{account_id}
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(r.PathValue("account_id"))
	if err != nil {
		BadRequest(w, "invalid account_id")
		return
	}

	account, err := h.accounts.GetByID(r.Context(), accountID)
	if HandleRepoError(w, h.logger, err, "account not found") {
		return
	}

	Success(w, AccountFromDomain(account))
}
