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

// CancelPolicy decides what happens to open bookings when a session is cancelled.
type CancelPolicy string

const (
	// CancelKeepBookings only deactivates the session.
	CancelKeepBookings CancelPolicy = "keep"
	// CancelRefundBookings cancels every open booking and refunds consumed entries.
	CancelRefundBookings CancelPolicy = "refund"
)

// SessionCancellation is the outcome of cancelling a session.
type SessionCancellation struct {
	Session   model.Session
	Cancelled []model.Booking
}

// SessionRepository handles persistence for sessions.
type SessionRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create schedules a session. The end time is derived from the class type
// duration; the class type must be active and belong to the center.
func (r *SessionRepository) Create(ctx context.Context, req model.CreateSessionRequest) (*model.Session, error) {
	var ct model.ClassType
	var lifecycle string
	err := r.db.QueryRow(ctx,
		`SELECT id, center_id, name, duration_minutes, lifecycle FROM class_types
		 WHERE id = $1 AND center_id = $2 AND lifecycle = 'active'`,
		req.ClassTypeID, req.CenterID,
	).Scan(&ct.ID, &ct.CenterID, &ct.Name, &ct.DurationMinutes, &lifecycle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get class type: %w", err)
	}
	ct.Lifecycle = model.Lifecycle(lifecycle)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	start := req.StartTime.UTC()
	s := &model.Session{
		ID:          id.String(),
		CenterID:    req.CenterID,
		ClassTypeID: req.ClassTypeID,
		StartTime:   start,
		EndTime:     start.Add(ct.Duration()),
		Capacity:    req.Capacity,
		Lifecycle:   model.LifecycleActive,
		CreatedAt:   r.now(),
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO sessions (id, center_id, class_type_id, start_time, end_time, capacity, booked_count, lifecycle, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8)`,
		s.ID, s.CenterID, s.ClassTypeID, s.StartTime, s.EndTime, s.Capacity, string(s.Lifecycle), s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

// GetByID returns a single session or ErrNotFound.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*model.Session, error) {
	s, err := scanSession(r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

// List returns active sessions matching the filter ordered by start time.
func (r *SessionRepository) List(ctx context.Context, f model.SessionFilter) ([]model.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE lifecycle = 'active'`
	var args []any
	if f.CenterID != "" {
		args = append(args, f.CenterID)
		query += fmt.Sprintf(` AND center_id = $%d`, len(args))
	}
	if start, end, ok := f.DayBounds(); ok {
		args = append(args, start, end)
		query += fmt.Sprintf(` AND start_time >= $%d AND start_time < $%d`, len(args)-1, len(args))
	}
	query += ` ORDER BY start_time, id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// ChangeCapacity resizes an active session. The session row is locked first
// so no booking can become active between the count and the update.
func (r *SessionRepository) ChangeCapacity(ctx context.Context, sessionID string, capacity int) (*model.Session, error) {
	var session *model.Session
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		s, err := lockSession(ctx, tx, sessionID, true)
		if err != nil {
			return err
		}
		active, err := countActiveBookings(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := checkCapacity(capacity, active); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE sessions SET capacity = $1 WHERE id = $2`, capacity, sessionID,
		); err != nil {
			return fmt.Errorf("update capacity: %w", err)
		}
		s.Capacity = capacity
		session = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Cancel soft-deactivates an active session. With CancelRefundBookings every
// open booking is cancelled in the same transaction and active ones get their
// consumed entry back; nothing is promoted into a cancelled session.
func (r *SessionRepository) Cancel(ctx context.Context, sessionID string, policy CancelPolicy) (*SessionCancellation, error) {
	var out *SessionCancellation
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		now := r.now()

		s, err := lockSession(ctx, tx, sessionID, true)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`UPDATE sessions SET lifecycle = 'deactivated' WHERE id = $1`, sessionID,
		); err != nil {
			return fmt.Errorf("deactivate session: %w", err)
		}
		s.Lifecycle = model.LifecycleDeactivated
		out = &SessionCancellation{}

		if policy == CancelRefundBookings {
			rows, err := tx.Query(ctx,
				`SELECT `+bookingColumns+` FROM bookings b
				 WHERE b.session_id = $1 AND b.status <> 'cancelled'
				 ORDER BY b.created_at, b.id
				 FOR UPDATE`,
				sessionID,
			)
			if err != nil {
				return fmt.Errorf("lock session bookings: %w", err)
			}
			open, err := collectBookings(rows)
			if err != nil {
				return err
			}
			for i := range open {
				if _, _, err := cancelLocked(ctx, tx, s, &open[i], now); err != nil {
					return err
				}
			}
			out.Cancelled = open
		}

		out.Session = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
