package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/logging"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/metrics"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
)

// TicketService covers plans, tickets and purchases.
type TicketService struct {
	tickets TicketStore
	plans   PlanStore
	orders  OrderStore
}

// NewTicketService constructs a TicketService.
func NewTicketService(tickets TicketStore, plans PlanStore, orders OrderStore) *TicketService {
	return &TicketService{tickets: tickets, plans: plans, orders: orders}
}

func (s *TicketService) ListPlans(ctx context.Context) ([]model.TicketPlan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, wrap("list plans", err)
	}
	if plans == nil {
		plans = []model.TicketPlan{}
	}
	return plans, nil
}

func (s *TicketService) CreatePlan(ctx context.Context, req model.CreatePlanRequest) (*model.TicketPlan, error) {
	plan, err := s.plans.Create(ctx, req)
	if err != nil {
		return nil, wrap("create plan", err)
	}
	logging.FromContext(ctx).WithField("plan_id", plan.ID).Info("plan created")
	return plan, nil
}

func (s *TicketService) DeactivatePlan(ctx context.Context, id string) (*model.TicketPlan, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	plan, err := s.plans.Deactivate(ctx, id)
	if err != nil {
		return nil, wrap("deactivate plan", err)
	}
	return plan, nil
}

// ActiveTicket returns the ticket the user's next booking at centerID would use.
func (s *TicketService) ActiveTicket(ctx context.Context, userID, centerID string) (*model.Ticket, error) {
	if err := parseID(centerID); err != nil {
		return nil, err
	}
	t, err := s.tickets.Active(ctx, userID, centerID)
	if err != nil {
		return nil, wrap("active ticket", err)
	}
	return t, nil
}

func (s *TicketService) ListMine(ctx context.Context, userID string) ([]model.Ticket, error) {
	tickets, err := s.tickets.ListByUser(ctx, userID)
	if err != nil {
		return nil, wrap("list tickets", err)
	}
	if tickets == nil {
		tickets = []model.Ticket{}
	}
	return tickets, nil
}

// Assign grants a plan to a user without payment.
func (s *TicketService) Assign(ctx context.Context, req model.AssignTicketRequest) (*model.Ticket, error) {
	t, accumulated, err := s.tickets.Assign(ctx, req)
	if err != nil {
		return nil, wrap("assign ticket", err)
	}
	logging.FromContext(ctx).WithFields(logrus.Fields{
		"ticket_id":   t.ID,
		"user_id":     req.UserID,
		"plan_id":     req.PlanID,
		"accumulated": accumulated,
	}).Info("ticket assigned")
	return t, nil
}

func (s *TicketService) Deactivate(ctx context.Context, ticketID string) (*model.Ticket, error) {
	if err := parseID(ticketID); err != nil {
		return nil, err
	}
	t, err := s.tickets.Deactivate(ctx, ticketID)
	if err != nil {
		return nil, wrap("deactivate ticket", err)
	}
	return t, nil
}

// CreateOrder opens a pending purchase of a plan.
func (s *TicketService) CreateOrder(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.Order, error) {
	o, err := s.orders.Create(ctx, userID, req)
	if err != nil {
		return nil, wrap("create order", err)
	}
	return o, nil
}

// ConfirmPayment grants the ordered plan. A replayed confirmation returns
// repository.ErrPaymentProcessed and changes nothing.
func (s *TicketService) ConfirmPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Grant, error) {
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"order_id":  c.OrderID,
		"provider":  c.Provider,
		"reference": c.ProviderReference,
	})

	grant, err := s.orders.ConfirmPayment(ctx, c)
	switch {
	case errors.Is(err, repository.ErrPaymentProcessed):
		metrics.PaymentsProcessed.WithLabelValues("replayed").Inc()
		log.Info("payment already processed")
		return nil, err
	case err != nil:
		metrics.PaymentsProcessed.WithLabelValues("failed").Inc()
		return nil, wrap("confirm payment", err)
	}

	metrics.PaymentsProcessed.WithLabelValues("granted").Inc()
	log.WithFields(logrus.Fields{
		"ticket_id":   grant.Ticket.ID,
		"accumulated": grant.Accumulated,
	}).Info("payment confirmed")
	return grant, nil
}
