package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

// lockTicket takes the row lock on a single ticket.
func lockTicket(ctx context.Context, q querier, ticketID string) (*model.Ticket, error) {
	t, err := scanTicket(q.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE id = $1 FOR UPDATE`,
		ticketID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock ticket row: %w", err)
	}
	return t, nil
}

// saveTicketBalance writes back the mutable ledger fields of a locked ticket.
func saveTicketBalance(ctx context.Context, q querier, t *model.Ticket) error {
	_, err := q.Exec(ctx,
		`UPDATE tickets SET remaining_entries = $1, lifecycle = $2, valid_until = $3 WHERE id = $4`,
		t.RemainingEntries, string(t.Lifecycle), t.ValidUntil, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update ticket %s: %w", t.ID, err)
	}
	return nil
}

// debitEntry consumes one entry from a locked ticket.
func debitEntry(ctx context.Context, q querier, t *model.Ticket) error {
	if err := t.Debit(); err != nil {
		return err
	}
	if t.Unlimited() {
		return nil
	}
	return saveTicketBalance(ctx, q, t)
}

// creditEntry refunds one entry to the ticket a booking debited and
// reactivates it.
func creditEntry(ctx context.Context, q querier, ticketID string) (*model.Ticket, error) {
	t, err := lockTicket(ctx, q, ticketID)
	if err != nil {
		return nil, err
	}
	if err := creditEntries(ctx, q, t, 1); err != nil {
		return nil, err
	}
	return t, nil
}

// creditEntries adds n entries to a ticket the caller already holds the row
// lock on. Unlimited tickets keep a nil balance.
func creditEntries(ctx context.Context, q querier, t *model.Ticket, n int) error {
	t.CreditN(n)
	return saveTicketBalance(ctx, q, t)
}
