package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — имя обменника.
type Exchange string

// Queue — имя очереди.
type Queue string

// RoutingKey — ключ маршрутизации.
type RoutingKey string

// Топология: один direct-обменник событий сайтов, одна очередь.
// Оба типа событий (смена расписания, удаление сайта) идут в одну
// очередь — consumer реестра диспетчеризует по Message.Type.
const (
	ExchangeSites Exchange = "mensa.sites"

	QueueSiteEvents Queue = "sites.events"

	RoutingKeySchedule RoutingKey = "schedule"
	RoutingKeyDeleted  RoutingKey = "deleted"
)

// SetupTopology объявляет обменники, очереди и привязки.
// Идемпотентна: повторное объявление с теми же параметрами — no-op.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeSites), // name
			"direct",              // type
			true,                  // durable
			false,                 // auto-deleted
			false,                 // internal
			false,                 // no-wait
			nil,                   // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeSites, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueSiteEvents), // name
			true,                    // durable
			false,                   // delete when unused
			false,                   // exclusive
			false,                   // no-wait
			nil,                     // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueSiteEvents, err)
		}

		for _, key := range []RoutingKey{RoutingKeySchedule, RoutingKeyDeleted} {
			err = ch.QueueBind(
				string(QueueSiteEvents),
				string(key),
				string(ExchangeSites),
				false, // no-wait
				nil,   // arguments
			)
			if err != nil {
				return fmt.Errorf("bind queue %s [%s]: %w", QueueSiteEvents, key, err)
			}
		}
		return nil
	})
}
