// Package service holds adapters to external systems used by the booking
// flow. The queue publisher sends domain events to RabbitMQ; failures are
// logged and returned so callers can decide whether to ignore them.
package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	q "github.com/iliyamo/appointment-booking/internal/queue"
)

// QueuePublisher publishes events to RabbitMQ. It dials per publish: the
// booking rate is low and a fresh connection avoids managing reconnects.
type QueuePublisher struct {
	URL string
	Log *zap.Logger
}

func NewQueuePublisher(url string, log *zap.Logger) *QueuePublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &QueuePublisher{URL: url, Log: log}
}

// PublishBookingConfirmed publishes ev to the booking.confirmed queue as a
// persistent JSON message.
func (p *QueuePublisher) PublishBookingConfirmed(ctx context.Context, ev q.BookingConfirmedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.Log.Error("rabbitmq: marshal event failed", zap.Error(err))
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.BookingConfirmedQueue, // name
		true,                    // durable
		false,                   // autoDelete
		false,                   // exclusive
		false,                   // noWait
		nil,                     // args
	); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.Reference,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",                      // default exchange
		q.BookingConfirmedQueue, // routing key = queue name
		false,                   // mandatory
		false,                   // immediate
		pub,
	); err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err), zap.String("reference", ev.Reference))
		return err
	}
	return nil
}
