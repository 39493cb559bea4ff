package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

type fixture struct {
	t        *testing.T
	ctx      context.Context
	db       *pgxpool.Pool
	centerID string
	classID  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := getPool(t)
	ctx := context.Background()

	f := &fixture{t: t, ctx: ctx, db: db, centerID: uuid.NewString(), classID: uuid.NewString()}
	_, err := db.Exec(ctx, `INSERT INTO centers (id, name) VALUES ($1, $2)`, f.centerID, "center-"+f.centerID)
	require.NoError(t, err)
	_, err = db.Exec(ctx,
		`INSERT INTO class_types (id, center_id, name, duration_minutes) VALUES ($1, $2, 'Yoga', 60)`,
		f.classID, f.centerID)
	require.NoError(t, err)
	return f
}

func (f *fixture) session(capacity int) *model.Session {
	f.t.Helper()
	s, err := NewSessionRepository(f.db).Create(f.ctx, model.CreateSessionRequest{
		CenterID:    f.centerID,
		ClassTypeID: f.classID,
		StartTime:   time.Now().Add(48 * time.Hour),
		Capacity:    capacity,
	})
	require.NoError(f.t, err)
	return s
}

func (f *fixture) plan(maxEntries *int) *model.TicketPlan {
	f.t.Helper()
	days := 30
	p, err := NewPlanRepository(f.db).Create(f.ctx, model.CreatePlanRequest{
		Name:         "plan",
		Code:         "plan-" + uuid.NewString(),
		PriceCents:   5000,
		DurationDays: &days,
		MaxEntries:   maxEntries,
	})
	require.NoError(f.t, err)
	return p
}

// ticket inserts a ticket directly so tests control the balance and window.
func (f *fixture) ticket(userID string, entries *int, validUntil time.Time) *model.Ticket {
	f.t.Helper()
	p := f.plan(entries)
	tk := model.Ticket{
		ID:               uuid.NewString(),
		UserID:           userID,
		CenterID:         f.centerID,
		PlanID:           p.ID,
		ValidFrom:        time.Now().Add(-time.Hour),
		ValidUntil:       validUntil,
		RemainingEntries: entries,
		Lifecycle:        model.LifecycleActive,
	}
	_, err := f.db.Exec(f.ctx,
		`INSERT INTO tickets (id, user_id, center_id, plan_id, valid_from, valid_until, remaining_entries, lifecycle, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', now())`,
		tk.ID, tk.UserID, tk.CenterID, tk.PlanID, tk.ValidFrom, tk.ValidUntil, tk.RemainingEntries)
	require.NoError(f.t, err)
	return &tk
}

func (f *fixture) userWithEntries(n int) (string, *model.Ticket) {
	userID := uuid.NewString()
	return userID, f.ticket(userID, &n, time.Now().Add(30*24*time.Hour))
}

func (f *fixture) reloadTicket(id string) *model.Ticket {
	f.t.Helper()
	tk, err := scanTicket(f.db.QueryRow(f.ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	require.NoError(f.t, err)
	return tk
}

func (f *fixture) reloadSession(id string) *model.Session {
	f.t.Helper()
	s, err := NewSessionRepository(f.db).GetByID(f.ctx, id)
	require.NoError(f.t, err)
	return s
}

func (f *fixture) bookingStatus(id string) model.BookingStatus {
	f.t.Helper()
	var status string
	require.NoError(f.t, f.db.QueryRow(f.ctx, `SELECT status FROM bookings WHERE id = $1`, id).Scan(&status))
	return model.BookingStatus(status)
}

func (f *fixture) countByStatus(sessionID string, status model.BookingStatus) int {
	f.t.Helper()
	var n int
	require.NoError(f.t, f.db.QueryRow(f.ctx,
		`SELECT COUNT(*) FROM bookings WHERE session_id = $1 AND status = $2`,
		sessionID, string(status)).Scan(&n))
	return n
}

func intPtr(n int) *int { return &n }
