package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

const ticketColumns = `id, user_id, center_id, plan_id, valid_from, valid_until, remaining_entries, lifecycle, created_at`

func scanTicket(row pgx.Row) (*model.Ticket, error) {
	var t model.Ticket
	var lifecycle string
	err := row.Scan(&t.ID, &t.UserID, &t.CenterID, &t.PlanID, &t.ValidFrom, &t.ValidUntil,
		&t.RemainingEntries, &lifecycle, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Lifecycle = model.Lifecycle(lifecycle)
	return &t, nil
}

func collectTickets(rows pgx.Rows) ([]model.Ticket, error) {
	defer rows.Close()

	var tickets []model.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

// requireEntitlement locks every ticket the user could book centerID with and
// returns the one that should be consumed. Candidates are locked in id order
// so two requests from the same user cannot deadlock on their tickets.
func requireEntitlement(ctx context.Context, q querier, userID, centerID string, now time.Time) (*model.Ticket, error) {
	rows, err := q.Query(ctx,
		`SELECT `+ticketColumns+`
		 FROM tickets
		 WHERE user_id = $1
		   AND center_id = $2
		   AND lifecycle = 'active'
		   AND valid_from <= $3
		   AND valid_until >= $3
		   AND (remaining_entries IS NULL OR remaining_entries > 0)
		 ORDER BY id
		 FOR UPDATE`,
		userID, centerID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("lock tickets: %w", err)
	}
	tickets, err := collectTickets(rows)
	if err != nil {
		return nil, err
	}

	best, ok := model.BestTicket(tickets, centerID, now)
	if !ok {
		return nil, ErrForbidden
	}
	return best, nil
}
