package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/logging"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/metrics"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/queue"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
)

// SessionService covers the public schedule and the admin session operations.
type SessionService struct {
	sessions SessionStore
	bookings BookingStore
	cache    SessionCache
	notifier Notifier
	policy   repository.CancelPolicy
	now      func() time.Time
}

// NewSessionService constructs a SessionService. policy decides what
// happens to open bookings when an admin cancels a session.
func NewSessionService(
	sessions SessionStore,
	bookings BookingStore,
	cache SessionCache,
	notifier Notifier,
	policy repository.CancelPolicy,
) *SessionService {
	if policy == "" {
		policy = repository.CancelKeepBookings
	}
	return &SessionService{
		sessions: sessions,
		bookings: bookings,
		cache:    cache,
		notifier: notifier,
		policy:   policy,
		now:      time.Now,
	}
}

// List returns active sessions, served from the cache when possible.
func (s *SessionService) List(ctx context.Context, f model.SessionFilter) ([]model.Session, error) {
	if f.CenterID != "" {
		if err := parseID(f.CenterID); err != nil {
			return []model.Session{}, nil
		}
	}
	if cached, ok := s.cache.Get(ctx, f); ok {
		return cached, nil
	}

	sessions, err := s.sessions.List(ctx, f)
	if err != nil {
		return nil, wrap("list sessions", err)
	}
	if sessions == nil {
		sessions = []model.Session{}
	}
	s.cache.Set(ctx, f, sessions)
	return sessions, nil
}

// Get returns a single session.
func (s *SessionService) Get(ctx context.Context, id string) (*model.Session, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("get session", err)
	}
	return session, nil
}

// Create schedules a new session. Sessions can only be created in the future.
func (s *SessionService) Create(ctx context.Context, req model.CreateSessionRequest) (*model.Session, error) {
	if !req.StartTime.After(s.now()) {
		return nil, fmt.Errorf("%w: start_time must be in the future", repository.ErrValidation)
	}
	if req.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", repository.ErrValidation)
	}

	session, err := s.sessions.Create(ctx, req)
	if err != nil {
		return nil, wrap("create session", err)
	}
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"session_id": session.ID,
		"center_id":  session.CenterID,
		"capacity":   session.Capacity,
	}).Info("session created")

	s.cache.Invalidate(ctx)
	return session, nil
}

// ChangeCapacity resizes a session, refusing to go below its active bookings.
func (s *SessionService) ChangeCapacity(ctx context.Context, id string, capacity int) (*model.Session, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}

	session, err := s.sessions.ChangeCapacity(ctx, id, capacity)
	if err != nil {
		return nil, wrap("change capacity", err)
	}
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"session_id": id,
		"capacity":   capacity,
	}).Info("session capacity changed")

	s.cache.Invalidate(ctx)
	return session, nil
}

// Cancel deactivates a session according to the configured policy.
func (s *SessionService) Cancel(ctx context.Context, id string) (*repository.SessionCancellation, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}

	out, err := s.sessions.Cancel(ctx, id, s.policy)
	if err != nil {
		return nil, wrap("cancel session", err)
	}
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"session_id":         id,
		"policy":             s.policy,
		"cancelled_bookings": len(out.Cancelled),
	}).Info("session cancelled")

	s.cache.Invalidate(ctx)
	for _, b := range out.Cancelled {
		metrics.BookingsCancelled.WithLabelValues(strconv.FormatBool(b.TicketID != nil)).Inc()
		publish(ctx, s.notifier, queue.NewBookingEvent(queue.BookingCancelled, b, out.Session.CenterID))
	}
	return out, nil
}

// ListBookings returns bookings in any state for admins.
func (s *SessionService) ListBookings(ctx context.Context, f model.SessionFilter) ([]model.Booking, error) {
	for _, id := range []string{f.SessionID, f.CenterID} {
		if id == "" {
			continue
		}
		if err := parseID(id); err != nil {
			return []model.Booking{}, nil
		}
	}

	bookings, err := s.bookings.ListForAdmin(ctx, f)
	if err != nil {
		return nil, wrap("list bookings", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}
