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

const bookingColumns = `b.id, b.user_id, b.session_id, b.ticket_id, b.status, b.created_at, b.promoted_at, b.cancelled_at`

func scanBooking(row pgx.Row) (*model.Booking, error) {
	var b model.Booking
	var status string
	err := row.Scan(&b.ID, &b.UserID, &b.SessionID, &b.TicketID, &status,
		&b.CreatedAt, &b.PromotedAt, &b.CancelledAt)
	if err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]model.Booking, error) {
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// BookingRepository is the booking state machine. It composes the capacity
// tracker, entitlement enforcement and ticket ledger inside one transaction.
type BookingRepository struct {
	db  *pgxpool.Pool
	now func() time.Time
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create books a seat for the user, or puts the user on the waiting list when
// the session is full.
//
//  1. lock the session row (inactive or missing sessions are ErrNotFound)
//  2. reject a second open booking for the same user and session
//  3. lock and pick the ticket that qualifies (ErrForbidden when none)
//  4. with a free seat: increment booked_count, debit the ticket, insert active
//     without one: insert waiting, touch nothing else
//
// The partial unique index on open bookings backs up step 2 when two requests
// from the same user race; the violation rolls everything back.
func (r *BookingRepository) Create(ctx context.Context, userID, sessionID string) (*model.Booking, error) {
	var booking *model.Booking
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		now := r.now()

		session, err := lockSession(ctx, tx, sessionID, true)
		if err != nil {
			return err
		}

		var exists bool
		err = tx.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT 1 FROM bookings
				WHERE user_id = $1 AND session_id = $2 AND status <> 'cancelled'
			)`,
			userID, sessionID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check duplicate: %w", err)
		}
		if exists {
			return ErrAlreadyBooked
		}

		ticket, err := requireEntitlement(ctx, tx, userID, session.CenterID, now)
		if err != nil {
			return err
		}

		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate booking id: %w", err)
		}
		booking = &model.Booking{
			ID:        id.String(),
			UserID:    userID,
			SessionID: sessionID,
			Status:    session.Placement(),
			CreatedAt: now,
		}

		if booking.Status == model.BookingActive {
			if _, err := reserveSeat(ctx, tx, session); err != nil {
				return err
			}
			if err := debitEntry(ctx, tx, ticket); err != nil {
				return fmt.Errorf("debit ticket %s: %w", ticket.ID, err)
			}
			booking.TicketID = &ticket.ID
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO bookings (id, user_id, session_id, ticket_id, status, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			booking.ID, booking.UserID, booking.SessionID, booking.TicketID, string(booking.Status), booking.CreatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyBooked
			}
			return fmt.Errorf("insert booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel cancels the caller's open booking. Cancelling an active booking frees
// its seat, refunds the entry it consumed and promotes the oldest waiting
// booking of the same session. Promotion never consumes an entry.
func (r *BookingRepository) Cancel(ctx context.Context, userID, bookingID string) (*model.CancelResult, error) {
	var result *model.CancelResult
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		now := r.now()

		var sessionID string
		err := tx.QueryRow(ctx,
			`SELECT session_id FROM bookings
			 WHERE id = $1 AND user_id = $2 AND status <> 'cancelled'`,
			bookingID, userID,
		).Scan(&sessionID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("find booking: %w", err)
		}

		session, err := lockSession(ctx, tx, sessionID, false)
		if err != nil {
			return err
		}

		// Re-read under lock: a concurrent cancel may have won the race.
		booking, err := scanBooking(tx.QueryRow(ctx,
			`SELECT `+bookingColumns+` FROM bookings b
			 WHERE b.id = $1 AND b.user_id = $2 AND b.status <> 'cancelled'
			 FOR UPDATE`,
			bookingID, userID,
		))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock booking: %w", err)
		}

		result = &model.CancelResult{CenterID: session.CenterID}
		refunded, promoted, err := cancelLocked(ctx, tx, session, booking, now)
		if err != nil {
			return err
		}
		result.Booking = *booking
		result.RefundedTicketID = refunded
		result.Promoted = promoted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// cancelLocked applies the cancellation transitions to a booking whose
// session row is already locked. booking is updated in place.
func cancelLocked(ctx context.Context, tx pgx.Tx, session *model.Session, booking *model.Booking, now time.Time) (*string, *model.Booking, error) {
	wasActive := booking.Status == model.BookingActive
	consumed := booking.ConsumedEntry()

	if !booking.Status.CanTransitionTo(model.BookingCancelled) {
		return nil, nil, ErrNotFound
	}
	_, err := tx.Exec(ctx,
		`UPDATE bookings SET status = 'cancelled', cancelled_at = $1 WHERE id = $2`,
		now, booking.ID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("cancel booking: %w", err)
	}
	booking.Status = model.BookingCancelled
	booking.CancelledAt = &now

	if !wasActive {
		return nil, nil, nil
	}

	if err := releaseSeat(ctx, tx, session); err != nil {
		return nil, nil, err
	}

	var refunded *string
	if consumed {
		t, err := creditEntry(ctx, tx, *booking.TicketID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, nil, fmt.Errorf("refund ticket: %w", err)
		}
		if t != nil && !t.Unlimited() {
			refunded = &t.ID
		}
	}

	promoted, err := promoteNext(ctx, tx, session, now)
	if err != nil {
		return nil, nil, err
	}
	return refunded, promoted, nil
}

// promoteNext moves the oldest waiting booking of a locked session into the
// freed seat. Ties on created_at are broken by id.
func promoteNext(ctx context.Context, tx pgx.Tx, session *model.Session, now time.Time) (*model.Booking, error) {
	if !session.Lifecycle.IsActive() {
		return nil, nil
	}
	next, err := scanBooking(tx.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings b
		 WHERE b.session_id = $1 AND b.status = 'waiting'
		 ORDER BY b.created_at, b.id
		 LIMIT 1
		 FOR UPDATE`,
		session.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find waiting booking: %w", err)
	}

	reserved, err := reserveSeat(ctx, tx, session)
	if err != nil || !reserved {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE bookings SET status = 'active', promoted_at = $1 WHERE id = $2`,
		now, next.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("promote booking: %w", err)
	}
	next.Status = model.BookingActive
	next.PromotedAt = &now
	return next, nil
}

// ListByUser returns the user's open bookings, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings b
		 WHERE b.user_id = $1 AND b.status <> 'cancelled'
		 ORDER BY b.created_at DESC, b.id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return collectBookings(rows)
}

// ListForAdmin returns bookings in any state matching the filter, newest first.
func (r *BookingRepository) ListForAdmin(ctx context.Context, f model.SessionFilter) ([]model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN sessions s ON s.id = b.session_id WHERE TRUE`
	var args []any
	if f.SessionID != "" {
		args = append(args, f.SessionID)
		query += fmt.Sprintf(` AND b.session_id = $%d`, len(args))
	}
	if f.CenterID != "" {
		args = append(args, f.CenterID)
		query += fmt.Sprintf(` AND s.center_id = $%d`, len(args))
	}
	if start, end, ok := f.DayBounds(); ok {
		args = append(args, start, end)
		query += fmt.Sprintf(` AND s.start_time >= $%d AND s.start_time < $%d`, len(args)-1, len(args))
	}
	query += ` ORDER BY b.created_at DESC, b.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return collectBookings(rows)
}
