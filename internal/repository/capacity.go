package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

const sessionColumns = `id, center_id, class_type_id, start_time, end_time, capacity, booked_count, lifecycle, created_at`

func scanSession(row pgx.Row) (*model.Session, error) {
	var s model.Session
	var lifecycle string
	err := row.Scan(&s.ID, &s.CenterID, &s.ClassTypeID, &s.StartTime, &s.EndTime,
		&s.Capacity, &s.BookedCount, &lifecycle, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Lifecycle = model.Lifecycle(lifecycle)
	return &s, nil
}

// lockSession acquires an exclusive row lock on the session. The lock is held
// until the surrounding transaction ends, so a second caller blocks here and
// then observes the first caller's booked_count.
func lockSession(ctx context.Context, q querier, sessionID string, activeOnly bool) (*model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	if activeOnly {
		query += ` AND lifecycle = 'active'`
	}
	query += ` FOR UPDATE`

	s, err := scanSession(q.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock session row: %w", err)
	}
	return s, nil
}

// reserveSeat takes one seat on a session locked by lockSession. It returns
// false without touching the row when the session is at capacity.
func reserveSeat(ctx context.Context, q querier, s *model.Session) (bool, error) {
	if s.IsFull() {
		return false, nil
	}
	_, err := q.Exec(ctx,
		`UPDATE sessions SET booked_count = booked_count + 1 WHERE id = $1`,
		s.ID,
	)
	if err != nil {
		return false, fmt.Errorf("increment booked_count: %w", err)
	}
	s.BookedCount++
	return true, nil
}

// releaseSeat frees the seat of exactly one cancelled active booking.
func releaseSeat(ctx context.Context, q querier, s *model.Session) error {
	tag, err := q.Exec(ctx,
		`UPDATE sessions SET booked_count = booked_count - 1 WHERE id = $1 AND booked_count > 0`,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("decrement booked_count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decrement booked_count: session %s has no booked seats", s.ID)
	}
	s.BookedCount--
	return nil
}

// checkCapacity is the admin capacity guard: a session may never be resized
// below the number of bookings currently holding a seat.
func checkCapacity(requested, active int) error {
	if requested <= 0 {
		return fmt.Errorf("%w: capacity must be a positive integer", ErrValidation)
	}
	if requested < active {
		return &CapacityError{Requested: requested, Active: active}
	}
	return nil
}

func countActiveBookings(ctx context.Context, q querier, sessionID string) (int, error) {
	var n int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE session_id = $1 AND status = 'active'`,
		sessionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active bookings: %w", err)
	}
	return n, nil
}
