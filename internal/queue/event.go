// Package queue publishes booking notifications to RabbitMQ and consumes them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

// BookingQueueName is the durable queue every booking event goes to.
const BookingQueueName = "booking.events"

// EventType names a booking lifecycle notification.
type EventType string

const (
	BookingCreated   EventType = "booking.created"
	BookingCancelled EventType = "booking.cancelled"
	BookingPromoted  EventType = "booking.promoted"
)

// BookingEvent is the message body published after a booking transaction commits.
type BookingEvent struct {
	ID         string              `json:"id"`
	Type       EventType           `json:"type"`
	BookingID  string              `json:"booking_id"`
	UserID     string              `json:"user_id"`
	SessionID  string              `json:"session_id"`
	CenterID   string              `json:"center_id,omitempty"`
	Status     model.BookingStatus `json:"status"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// NewBookingEvent builds an event describing b.
func NewBookingEvent(t EventType, b model.Booking, centerID string) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       t,
		BookingID:  b.ID,
		UserID:     b.UserID,
		SessionID:  b.SessionID,
		CenterID:   centerID,
		Status:     b.Status,
		OccurredAt: time.Now().UTC(),
	}
}
