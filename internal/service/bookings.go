package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/logging"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/metrics"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/queue"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
)

// BookingService orchestrates booking and cancellation for end users.
type BookingService struct {
	bookings BookingStore
	cache    SessionCache
	notifier Notifier
}

// NewBookingService constructs a BookingService with its dependencies.
func NewBookingService(bookings BookingStore, cache SessionCache, notifier Notifier) *BookingService {
	return &BookingService{bookings: bookings, cache: cache, notifier: notifier}
}

// Create books a session for userID. The booking comes back active when a
// seat was free and waiting otherwise.
func (s *BookingService) Create(ctx context.Context, userID string, req model.CreateBookingRequest) (*model.Booking, error) {
	if err := parseID(req.SessionID); err != nil {
		return nil, err
	}

	b, err := s.bookings.Create(ctx, userID, req.SessionID)
	if err != nil {
		metrics.BookingsRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, wrap("create booking", err)
	}

	metrics.BookingsCreated.WithLabelValues(string(b.Status)).Inc()
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"booking_id": b.ID,
		"session_id": b.SessionID,
		"user_id":    userID,
		"status":     b.Status,
	}).Info("booking created")

	s.cache.Invalidate(ctx)
	publish(ctx, s.notifier, queue.NewBookingEvent(queue.BookingCreated, *b, ""))
	return b, nil
}

// Cancel cancels one of the caller's open bookings.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID string) (*model.CancelResult, error) {
	if err := parseID(bookingID); err != nil {
		return nil, err
	}

	res, err := s.bookings.Cancel(ctx, userID, bookingID)
	if err != nil {
		return nil, wrap("cancel booking", err)
	}

	refunded := res.RefundedTicketID != nil
	metrics.BookingsCancelled.WithLabelValues(strconv.FormatBool(refunded)).Inc()
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"booking_id": res.Booking.ID,
		"session_id": res.Booking.SessionID,
		"user_id":    userID,
		"refunded":   refunded,
	})
	log.Info("booking cancelled")

	s.cache.Invalidate(ctx)
	publish(ctx, s.notifier, queue.NewBookingEvent(queue.BookingCancelled, res.Booking, res.CenterID))

	if res.Promoted != nil {
		metrics.WaitlistPromotions.Inc()
		log.WithField("promoted_booking_id", res.Promoted.ID).Info("waiting booking promoted")
		publish(ctx, s.notifier, queue.NewBookingEvent(queue.BookingPromoted, *res.Promoted, res.CenterID))
	}
	return res, nil
}

// ListMine returns the caller's active and waiting bookings.
func (s *BookingService) ListMine(ctx context.Context, userID string) ([]model.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap("list bookings", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrForbidden):
		return "no_ticket"
	case errors.Is(err, repository.ErrAlreadyBooked):
		return "duplicate"
	case errors.Is(err, repository.ErrNotFound):
		return "session_not_found"
	default:
		return "error"
	}
}
