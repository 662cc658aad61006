package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageType — тип сообщения в очереди.
type MessageType string

// Типы сообщений.
const (
	MessageTypeScheduleChanged MessageType = "settings.changed"
	MessageTypeSiteDeleted     MessageType = "site.deleted"
)

// Message — сообщение для публикации.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type — тип сообщения.
	Type MessageType `json:"type"`

	// Payload — полезная нагрузка.
	Payload json.RawMessage `json:"payload"`

	// Timestamp — время создания.
	Timestamp time.Time `json:"timestamp"`
}

// ScheduleChangedPayload — редактор изменил расписание сайта.
// Потребитель: Job Registry.
type ScheduleChangedPayload struct {
	SiteID  uuid.UUID `json:"site_id"`
	Hour    int       `json:"hour"`
	Minute  int       `json:"minute"`
	Enabled bool      `json:"enabled"`
}

// SiteDeletedPayload — сайт удалён.
// Потребитель: Job Registry (снимает и дерегистрирует job).
type SiteDeletedPayload struct {
	SiteID uuid.UUID `json:"site_id"`
}

// Publisher публикует события сайтов в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// Publish публикует сообщение в обменник с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),
			string(routingKey),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent, // сообщение переживёт рестарт RabbitMQ
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)
		return nil
	})
}

// PublishScheduleChanged публикует событие изменения расписания сайта.
func (p *Publisher) PublishScheduleChanged(ctx context.Context, payload ScheduleChangedPayload) error {
	return p.publishPayload(ctx, MessageTypeScheduleChanged, RoutingKeySchedule, payload)
}

// PublishSiteDeleted публикует событие удаления сайта.
func (p *Publisher) PublishSiteDeleted(ctx context.Context, siteID uuid.UUID) error {
	return p.publishPayload(ctx, MessageTypeSiteDeleted, RoutingKeyDeleted, SiteDeletedPayload{SiteID: siteID})
}

func (p *Publisher) publishPayload(ctx context.Context, msgType MessageType, key RoutingKey, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	msg := &Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Payload:   raw,
		Timestamp: time.Now(),
	}
	return p.Publish(ctx, ExchangeSites, key, msg)
}
