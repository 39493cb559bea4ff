package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// redialCooldown is how long Publish fails fast after a dial attempt failed.
const redialCooldown = 5 * time.Second

// ErrBrokerUnavailable is returned while the publisher waits out the cooldown
// after a failed dial.
var ErrBrokerUnavailable = errors.New("broker unavailable")

// Publisher sends booking events to RabbitMQ over one long-lived channel,
// redialing when the broker dropped the connection. Dialing happens outside
// the lock, so one slow broker never queues publishers behind each other.
type Publisher struct {
	url string

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	retryAt  time.Time
	now      func() time.Time
	dialFunc func(ctx context.Context, url string) (*amqp.Connection, error)
}

// NewPublisher constructs a Publisher. No connection is made until the
// first Publish.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, now: time.Now, dialFunc: dial}
}

func (p *Publisher) current() (*amqp.Channel, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() && !p.conn.IsClosed() {
		return p.ch, true
	}
	return nil, p.now().Before(p.retryAt)
}

func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	ch, cooling := p.current()
	if ch != nil {
		return ch, nil
	}
	if cooling {
		return nil, ErrBrokerUnavailable
	}

	conn, err := p.dialFunc(ctx, p.url)
	if err != nil {
		p.mu.Lock()
		p.retryAt = p.now().Add(redialCooldown)
		p.mu.Unlock()
		return nil, err
	}
	ch, err = conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if _, err := ch.QueueDeclare(BookingQueueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() && !p.conn.IsClosed() {
		// a concurrent publish connected first
		_ = ch.Close()
		_ = conn.Close()
		return p.ch, nil
	}
	p.closeLocked()
	p.conn, p.ch = conn, ch
	p.retryAt = time.Time{}
	return ch, nil
}

// Publish sends ev as a persistent JSON message. It never blocks longer than
// ctx allows, including while connecting.
func (p *Publisher) Publish(ctx context.Context, ev BookingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ch, err := p.channel(ctx)
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, "", BookingQueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         string(ev.Type),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.mu.Lock()
		if p.ch == ch {
			p.closeLocked()
		}
		p.mu.Unlock()
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Close releases the broker connection.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *Publisher) closeLocked() error {
	var err error
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err = p.conn.Close()
		p.conn = nil
	}
	if errors.Is(err, amqp.ErrClosed) {
		return nil
	}
	return err
}

// Discard drops every event. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, BookingEvent) error { return nil }
