package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shaiso/Mensa/internal/domain"
	"github.com/shaiso/Mensa/internal/mq"
)

// GetSchedule возвращает расписание reset job'а сайта: персистентные
// настройки плюс живое состояние таймера.
// GET /api/v1/sites/{site_id}/schedule
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.siteID(w, r)
	if !ok {
		return
	}

	site, err := h.siteRepo.GetByID(r.Context(), siteID)
	if HandleRepoError(w, h.logger, err, "site not found") {
		return
	}

	info := h.registry.Info(siteID)
	Success(w, ScheduleResponse{
		SiteID:  site.ID,
		Hour:    site.AutoDeleteHour,
		Minute:  site.AutoDeleteMinute,
		Enabled: site.AutoDeleteEnabled,
		State:   info.State,
		NextRun: info.NextRun,
	})
}

// UpdateSchedule меняет расписание reset job'а: сначала настройки
// персистятся, затем изменение применяется к реестру. Если настроен
// publisher, событие settings.changed публикуется и для остальных
// инстансов.
// PUT /api/v1/sites/{site_id}/schedule
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	siteID, ok := h.siteID(w, r)
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if err := domain.ValidateTriggerTime(req.Hour, req.Minute); err != nil {
		BadRequest(w, err.Error())
		return
	}

	err := h.siteRepo.UpdateSchedule(r.Context(), siteID, req.Hour, req.Minute, req.Enabled)
	if HandleRepoError(w, h.logger, err, "site not found") {
		return
	}

	if err := h.registry.OnScheduleChanged(siteID, req.Hour, req.Minute, req.Enabled); err != nil {
		InternalError(w, h.logger, err)
		return
	}

	if h.publisher != nil {
		err := h.publisher.PublishScheduleChanged(r.Context(), mq.ScheduleChangedPayload{
			SiteID:  siteID,
			Hour:    req.Hour,
			Minute:  req.Minute,
			Enabled: req.Enabled,
		})
		if err != nil {
			// Настройки уже сохранены и применены локально;
			// неудачная публикация не откатывает изменение.
			h.logger.Error("publish settings.changed failed", "site_id", siteID, "error", err)
		}
	}

	info := h.registry.Info(siteID)
	Success(w, ScheduleResponse{
		SiteID:  siteID,
		Hour:    req.Hour,
		Minute:  req.Minute,
		Enabled: req.Enabled,
		State:   info.State,
		NextRun: info.NextRun,
	})
}

// siteID извлекает site_id из пути запроса.
func (h *Handler) siteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("site_id"))
	if err != nil {
		BadRequest(w, "invalid site_id")
		return uuid.Nil, false
	}
	return id, true
}
