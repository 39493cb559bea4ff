package model

import "time"

// BookingStatus is the state of a booking.
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingWaiting   BookingStatus = "waiting"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransitionTo reports whether a booking may move from s to next.
// Cancelled is terminal; waiting only becomes active through promotion.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingActive:
		return next == BookingCancelled
	case BookingWaiting:
		return next == BookingActive || next == BookingCancelled
	default:
		return false
	}
}

// Booking is one user's claim on one session.
type Booking struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	SessionID string        `json:"session_id"`
	Status    BookingStatus `json:"status"`
	// TicketID is the ticket debited when the booking became active through
	// the creation path. Nil for waiting and promoted bookings.
	TicketID    *string    `json:"ticket_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	PromotedAt  *time.Time `json:"promoted_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// ConsumedEntry reports whether cancelling this booking owes a refund.
func (b *Booking) ConsumedEntry() bool {
	return b.Status == BookingActive && b.TicketID != nil
}

// CancelResult summarises a cancellation.
type CancelResult struct {
	Booking          Booking  `json:"booking"`
	RefundedTicketID *string  `json:"refunded_ticket_id,omitempty"`
	Promoted         *Booking `json:"promoted,omitempty"`
	CenterID         string   `json:"-"`
}

// CreateBookingRequest is the payload for booking a session.
type CreateBookingRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
}
