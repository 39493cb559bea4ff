// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer. Repositories own the
// transactional invariants; services add input checks, cache invalidation,
// metrics and post-commit notifications.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/logging"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/metrics"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/queue"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
)

const publishTimeout = 3 * time.Second

// BookingStore is the booking state machine.
type BookingStore interface {
	Create(ctx context.Context, userID, sessionID string) (*model.Booking, error)
	Cancel(ctx context.Context, userID, bookingID string) (*model.CancelResult, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListForAdmin(ctx context.Context, f model.SessionFilter) ([]model.Booking, error)
}

// SessionStore persists sessions and guards their capacity.
type SessionStore interface {
	Create(ctx context.Context, req model.CreateSessionRequest) (*model.Session, error)
	GetByID(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context, f model.SessionFilter) ([]model.Session, error)
	ChangeCapacity(ctx context.Context, sessionID string, capacity int) (*model.Session, error)
	Cancel(ctx context.Context, sessionID string, policy repository.CancelPolicy) (*repository.SessionCancellation, error)
}

// TicketStore reads and administers tickets.
type TicketStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.Ticket, error)
	Active(ctx context.Context, userID, centerID string) (*model.Ticket, error)
	Assign(ctx context.Context, req model.AssignTicketRequest) (*model.Ticket, bool, error)
	Deactivate(ctx context.Context, ticketID string) (*model.Ticket, error)
}

// PlanStore is the ticket plan catalog.
type PlanStore interface {
	List(ctx context.Context) ([]model.TicketPlan, error)
	Create(ctx context.Context, req model.CreatePlanRequest) (*model.TicketPlan, error)
	Deactivate(ctx context.Context, id string) (*model.TicketPlan, error)
}

// OrderStore records purchases and credits confirmed payments.
type OrderStore interface {
	Create(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.Order, error)
	ConfirmPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Grant, error)
}

// Notifier delivers booking events once the change is committed.
type Notifier interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// SessionCache fronts the public session listing.
type SessionCache interface {
	Get(ctx context.Context, f model.SessionFilter) ([]model.Session, bool)
	Set(ctx context.Context, f model.SessionFilter, sessions []model.Session)
	Invalidate(ctx context.Context)
}

// isDomainErr reports whether err is one the handlers translate to a 4xx.
func isDomainErr(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrForbidden) ||
		errors.Is(err, repository.ErrConflict) ||
		errors.Is(err, repository.ErrValidation)
}

// wrap keeps domain errors untouched so their messages reach the client as is.
func wrap(op string, err error) error {
	if isDomainErr(err) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

// parseID rejects anything that is not a UUID before it reaches a query.
// A malformed id can never name an existing row, so it is reported as missing.
func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repository.ErrNotFound
	}
	return nil
}

// publish sends ev without letting a broker failure affect the caller.
func publish(ctx context.Context, n Notifier, ev queue.BookingEvent) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := n.Publish(ctx, ev); err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(ev.Type)).Inc()
		logging.FromContext(ctx).WithError(err).
			WithField("booking_id", ev.BookingID).
			Warnf("could not publish %s", ev.Type)
	}
}
