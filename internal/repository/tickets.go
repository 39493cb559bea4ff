package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

// TicketRepository handles persistence for tickets outside the booking path.
type TicketRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewTicketRepository constructs a TicketRepository.
func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// ListByUser returns all of the user's tickets, newest first.
func (r *TicketRepository) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return collectTickets(rows)
}

// Active returns the ticket the user's next booking at centerID would consume.
func (r *TicketRepository) Active(ctx context.Context, userID, centerID string) (*model.Ticket, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE user_id = $1 AND center_id = $2`,
		userID, centerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	tickets, err := collectTickets(rows)
	if err != nil {
		return nil, err
	}
	best, ok := model.BestTicket(tickets, centerID, r.now())
	if !ok {
		return nil, ErrNotFound
	}
	return best, nil
}

// Assign grants a plan to a user on behalf of an admin, following the same
// accumulation policy as a purchase.
func (r *TicketRepository) Assign(ctx context.Context, req model.AssignTicketRequest) (*model.Ticket, bool, error) {
	var (
		ticket      *model.Ticket
		accumulated bool
	)
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		plan, err := getPlan(ctx, tx, req.PlanID, true)
		if err != nil {
			return err
		}
		ticket, accumulated, err = grantPlan(ctx, tx, req.UserID, req.CenterID, plan, r.now())
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return ticket, accumulated, nil
}

// Deactivate switches a ticket off regardless of its balance.
func (r *TicketRepository) Deactivate(ctx context.Context, ticketID string) (*model.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx,
		`UPDATE tickets SET lifecycle = 'deactivated' WHERE id = $1 RETURNING `+ticketColumns,
		ticketID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("deactivate ticket: %w", err)
	}
	return t, nil
}

// grantPlan issues a plan to a user. A limited plan is added onto an existing
// active, unexpired limited ticket for the same center when one exists;
// otherwise a new ticket is created.
func grantPlan(ctx context.Context, q querier, userID, centerID string, plan *model.TicketPlan, now time.Time) (*model.Ticket, bool, error) {
	fresh := plan.NewTicket(userID, centerID, now)

	if plan.Limited() {
		existing, err := scanTicket(q.QueryRow(ctx,
			`SELECT `+ticketColumns+` FROM tickets
			 WHERE user_id = $1 AND center_id = $2
			   AND lifecycle = 'active'
			   AND remaining_entries IS NOT NULL
			   AND valid_until >= $3
			 ORDER BY valid_until DESC, id
			 LIMIT 1
			 FOR UPDATE`,
			userID, centerID, now,
		))
		switch {
		case err == nil:
			existing.ExtendUntil(fresh.ValidUntil)
			if err := creditEntries(ctx, q, existing, *plan.MaxEntries); err != nil {
				return nil, false, err
			}
			return existing, true, nil
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, false, fmt.Errorf("find accumulating ticket: %w", err)
		}
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, false, fmt.Errorf("generate ticket id: %w", err)
	}
	fresh.ID = id.String()
	_, err = q.Exec(ctx,
		`INSERT INTO tickets (id, user_id, center_id, plan_id, valid_from, valid_until, remaining_entries, lifecycle, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		fresh.ID, fresh.UserID, fresh.CenterID, fresh.PlanID, fresh.ValidFrom, fresh.ValidUntil,
		fresh.RemainingEntries, string(fresh.Lifecycle), fresh.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, fmt.Errorf("%w: center %s", ErrNotFound, fresh.CenterID)
		}
		return nil, false, fmt.Errorf("insert ticket: %w", err)
	}
	return &fresh, false, nil
}
