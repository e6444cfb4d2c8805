// Package queue_publisher emits reservation events to RabbitMQ.
// Publishing is best effort: every error is logged and returned so
// request handlers can fire events without caring whether the broker is
// up.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/seatdesk/seat-reservation/internal/queue"
)

// Publisher holds one AMQP connection and channel and reuses them across
// events, redialing only when the broker went away.
type Publisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func New(url string) *Publisher {
	return &Publisher{url: url}
}

// channel returns the cached channel, dialing and declaring the queue
// first if needed.  The caller holds mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.drop()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(q.ReservationQueue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

// drop discards the cached connection.  The caller holds mu.
func (p *Publisher) drop() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// PublishReservationEvent sends one event to the reservation queue as a
// persistent JSON message.  A publish on a stale connection is retried
// once on a fresh one.
func (p *Publisher) PublishReservationEvent(ctx context.Context, event q.ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for attempt := 0; attempt < 2; attempt++ {
		ch, err := p.channel()
		if err != nil {
			log.Printf("rabbitmq: connect failed: %v", err)
			return err
		}
		err = ch.PublishWithContext(ctx, "", q.ReservationQueue, false, false, msg)
		if err == nil {
			return nil
		}
		// The broker may have dropped us since the last event.
		p.drop()
		if attempt == 1 {
			log.Printf("rabbitmq: publish failed: %v", err)
			return err
		}
	}
	return nil
}

// Close releases the cached connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop()
}
