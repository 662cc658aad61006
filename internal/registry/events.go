package registry

import (
	"context"
	"fmt"

	"github.com/shaiso/Mensa/internal/mq"
)

// EventHandler возвращает mq.Handler, применяющий события сайтов
// к реестру.
//
// settings.changed → OnScheduleChanged, site.deleted → Deregister.
// Неизвестные типы подтверждаются и игнорируются: очередь общая,
// её могут пополнить будущие события.
func (r *Registry) EventHandler() mq.Handler {
	return func(ctx context.Context, delivery *mq.Delivery) error {
		switch delivery.Message.Type {
		case mq.MessageTypeScheduleChanged:
			payload, err := mq.ParsePayload[mq.ScheduleChangedPayload](&delivery.Message)
			if err != nil {
				return fmt.Errorf("parse settings.changed: %w", err)
			}
			r.logger.Debug("received settings.changed event",
				"site_id", payload.SiteID,
				"trigger", fmt.Sprintf("%02d:%02d", payload.Hour, payload.Minute),
				"enabled", payload.Enabled,
			)
			return r.OnScheduleChanged(payload.SiteID, payload.Hour, payload.Minute, payload.Enabled)

		case mq.MessageTypeSiteDeleted:
			payload, err := mq.ParsePayload[mq.SiteDeletedPayload](&delivery.Message)
			if err != nil {
				return fmt.Errorf("parse site.deleted: %w", err)
			}
			r.logger.Debug("received site.deleted event", "site_id", payload.SiteID)
			r.Deregister(payload.SiteID)
			return nil

		default:
			r.logger.Warn("unknown message type, ignoring", "type", delivery.Message.Type)
			return nil
		}
	}
}
