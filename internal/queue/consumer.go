package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/logging"
)

const maxBackoff = 30 * time.Second

// Consumer drains the booking queue and logs each notification.
type Consumer struct {
	url string
}

// NewConsumer constructs a Consumer.
func NewConsumer(url string) *Consumer {
	return &Consumer{url: url}
}

// Run consumes until ctx is cancelled, reconnecting with backoff whenever the
// broker goes away.
func (c *Consumer) Run(ctx context.Context) error {
	log := logging.FromContext(ctx).WithField("queue", BookingQueueName)
	backoff := time.Second
	for {
		conn, err := dial(ctx, c.url)
		if err == nil {
			backoff = time.Second
			err = c.consume(ctx, conn)
			_ = conn.Close()
		}
		if ctx.Err() != nil {
			return nil
		}
		log.WithError(err).Warnf("booking consumer stopped, retrying in %s", backoff)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff < maxBackoff {
			backoff *= 2
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	if _, err := ch.QueueDeclare(BookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	deliveries, err := ch.Consume(BookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(ctx, d.Body); err != nil {
				logging.FromContext(ctx).WithError(err).Error("booking consumer: drop message")
				// no requeue, a malformed body would loop forever
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// handleMessage stands in for the mail sender: it records the notification.
func handleMessage(ctx context.Context, body []byte) error {
	var ev BookingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Type == "" || ev.BookingID == "" {
		return errors.New("event without type or booking id")
	}

	logging.FromContext(ctx).WithFields(logrus.Fields{
		"event_id":   ev.ID,
		"event_type": ev.Type,
		"booking_id": ev.BookingID,
		"user_id":    ev.UserID,
		"session_id": ev.SessionID,
		"status":     ev.Status,
	}).Info("booking notification")
	return nil
}
