// Package queue_publisher publishes admission events to RabbitMQ.  Errors are
// logged and returned so callers can ignore them without interrupting the
// request that triggered the event.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/theater-staff/internal/queue"
)

// Publisher dials the broker per publish.  Admissions are infrequent enough
// that a long-lived channel is not worth its reconnect handling.
type Publisher struct {
	URL string
	Log *slog.Logger
}

func New(url string, log *slog.Logger) *Publisher {
	if log == nil {
		log = slog.Default()
	}
	return &Publisher{URL: url, Log: log}
}

// PublishTicketAdmitted sends ev to the ticket.admitted queue as a persistent
// message whose MessageId is the event id, so consumers can deduplicate.
func (p *Publisher) PublishTicketAdmitted(ctx context.Context, ev q.TicketAdmittedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.Log.Error("rabbitmq: marshal event failed", "err", err)
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", "err", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", "err", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// durable, must match the consumer's declaration
	if _, err := ch.QueueDeclare(q.TicketAdmittedQueue, true, false, false, false, nil); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", "err", err)
		return err
	}

	if err := ch.PublishWithContext(ctx, "", q.TicketAdmittedQueue, false, false, Message(ev.EventID, body, time.Now())); err != nil {
		p.Log.Warn("rabbitmq: publish failed", "err", err)
		return err
	}
	return nil
}

// Message builds the AMQP publishing for an encoded event.
func Message(id string, body []byte, at time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    id,
		Timestamp:    at.UTC(),
		Body:         body,
	}
}
