package model

import "time"

// unlimitedWindow sizes tickets whose plan carries no duration.
const unlimitedWindow = 10

// TicketPlan is a catalog entry for a purchasable or assignable entitlement.
type TicketPlan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	PriceCents   int       `json:"price_cents"`
	DurationDays *int      `json:"duration_days"`
	MaxEntries   *int      `json:"max_entries"`
	Lifecycle    Lifecycle `json:"lifecycle"`
}

// Limited reports whether tickets issued from this plan carry an entry cap.
func (p *TicketPlan) Limited() bool {
	return p.MaxEntries != nil
}

// Window returns the validity window of a ticket issued at now.
func (p *TicketPlan) Window(now time.Time) (time.Time, time.Time) {
	if p.DurationDays != nil {
		return now, now.AddDate(0, 0, *p.DurationDays)
	}
	return now, now.AddDate(unlimitedWindow, 0, 0)
}

// NewTicket builds a fresh ticket snapshot for the plan.
func (p *TicketPlan) NewTicket(userID, centerID string, now time.Time) Ticket {
	from, until := p.Window(now)
	t := Ticket{
		UserID:     userID,
		CenterID:   centerID,
		PlanID:     p.ID,
		ValidFrom:  from,
		ValidUntil: until,
		Lifecycle:  LifecycleActive,
		CreatedAt:  now,
	}
	if p.MaxEntries != nil {
		n := *p.MaxEntries
		t.RemainingEntries = &n
	}
	return t
}

// CreatePlanRequest is the admin payload for adding a plan to the catalog.
type CreatePlanRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Code         string `json:"code" validate:"required,max=50"`
	PriceCents   int    `json:"price_cents" validate:"gte=0"`
	DurationDays *int   `json:"duration_days" validate:"omitempty,gt=0"`
	MaxEntries   *int   `json:"max_entries" validate:"omitempty,gt=0"`
}
