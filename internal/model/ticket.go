package model

import (
	"time"

	"github.com/samber/lo"
)

// Ticket is a user's entitlement to book sessions at one center under one plan.
type Ticket struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	CenterID string `json:"center_id"`
	PlanID   string `json:"plan_id"`

	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`

	// RemainingEntries is nil for unlimited tickets.
	RemainingEntries *int      `json:"remaining_entries"`
	Lifecycle        Lifecycle `json:"lifecycle"`
	CreatedAt        time.Time `json:"created_at"`
}

// Unlimited reports whether the ticket has no entry cap.
func (t *Ticket) Unlimited() bool {
	return t.RemainingEntries == nil
}

// Qualifies reports whether the ticket may back a booking at centerID at now.
func (t *Ticket) Qualifies(centerID string, now time.Time) bool {
	if t.CenterID != centerID || !t.Lifecycle.IsActive() {
		return false
	}
	if now.Before(t.ValidFrom) || now.After(t.ValidUntil) {
		return false
	}
	return t.Unlimited() || *t.RemainingEntries > 0
}

// Debit consumes one entry. Reaching zero deactivates the ticket.
func (t *Ticket) Debit() error {
	if t.Unlimited() {
		return nil
	}
	if *t.RemainingEntries <= 0 {
		return ErrEntriesExhausted
	}
	n := *t.RemainingEntries - 1
	t.RemainingEntries = &n
	if n == 0 {
		t.Lifecycle = LifecycleDeactivated
	}
	return nil
}

// CreditN adds n entries to a limited ticket and reactivates it. A credit
// always makes the ticket usable again; the validity window is checked
// separately at the next booking.
func (t *Ticket) CreditN(n int) {
	if !t.Unlimited() && n > 0 {
		total := *t.RemainingEntries + n
		t.RemainingEntries = &total
	}
	t.Lifecycle = LifecycleActive
}

// ExtendUntil moves the end of the validity window forward, never backward.
func (t *Ticket) ExtendUntil(until time.Time) {
	if until.After(t.ValidUntil) {
		t.ValidUntil = until
	}
}

// PreferTicket reports whether a should be consumed before b.
// Limited tickets go before unlimited ones, then the soonest expiry, then the
// lowest id.
func PreferTicket(a, b *Ticket) bool {
	if a.Unlimited() != b.Unlimited() {
		return !a.Unlimited()
	}
	if !a.ValidUntil.Equal(b.ValidUntil) {
		return a.ValidUntil.Before(b.ValidUntil)
	}
	return a.ID < b.ID
}

// BestTicket picks the ticket a booking at centerID should consume.
func BestTicket(tickets []Ticket, centerID string, now time.Time) (*Ticket, bool) {
	candidates := lo.Filter(tickets, func(t Ticket, _ int) bool {
		return t.Qualifies(centerID, now)
	})
	if len(candidates) == 0 {
		return nil, false
	}
	best := candidates[0]
	for _, t := range candidates[1:] {
		if PreferTicket(&t, &best) {
			best = t
		}
	}
	return &best, true
}

// AssignTicketRequest is the admin payload for granting a plan to a user.
type AssignTicketRequest struct {
	UserID   string `json:"user_id" validate:"required,uuid"`
	CenterID string `json:"center_id" validate:"required,uuid"`
	PlanID   string `json:"plan_id" validate:"required,uuid"`
}
