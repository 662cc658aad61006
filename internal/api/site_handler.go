package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
)

// CreateSite создаёт сайт и регистрирует для него scheduled job.
// POST /api/v1/sites
func (h *Handler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		BadRequest(w, "name is required")
		return
	}
	if err := domain.ValidateTriggerTime(req.Hour, req.Minute); err != nil {
		BadRequest(w, err.Error())
		return
	}

	now := time.Now()
	site := &domain.SiteSettings{
		ID:                uuid.New(),
		Name:              req.Name,
		AutoDeleteHour:    req.Hour,
		AutoDeleteMinute:  req.Minute,
		AutoDeleteEnabled: req.Enabled,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := h.siteRepo.Create(r.Context(), site); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	if err := h.registry.Register(site.ID, req.Hour, req.Minute, req.Enabled); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	Created(w, SiteFromDomain(site))
}

// GetSite возвращает настройки сайта.
// GET /api/v1/sites/{site_id}
func (h *Handler) GetSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.siteID(w, r)
	if !ok {
		return
	}

	site, err := h.siteRepo.GetByID(r.Context(), siteID)
	if HandleRepoError(w, h.logger, err, "site not found") {
		return
	}

	Success(w, SiteFromDomain(site))
}

// ListSites возвращает все сайты.
// GET /api/v1/sites
func (h *Handler) ListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.siteRepo.GetAll(r.Context())
	if err != nil {
		InternalError(w, h.logger, err)
		return
	}

	resp := make([]SiteResponse, 0, len(sites))
	for i := range sites {
		resp = append(resp, SiteFromDomain(&sites[i]))
	}
	List(w, resp, len(resp))
}

// DeleteSite удаляет сайт, дерегистрирует его job и, если настроен
// publisher, рассылает site.deleted остальным инстансам.
// DELETE /api/v1/sites/{site_id}
func (h *Handler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.siteID(w, r)
	if !ok {
		return
	}

	err := h.siteRepo.Delete(r.Context(), siteID)
	if HandleRepoError(w, h.logger, err, "site not found") {
		return
	}

	h.registry.Deregister(siteID)

	if h.publisher != nil {
		if err := h.publisher.PublishSiteDeleted(r.Context(), siteID); err != nil {
			h.logger.Error("publish site.deleted failed", "site_id", siteID, "error", err)
		}
	}

	NoContent(w)
}
