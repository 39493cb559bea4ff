package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service/mocks"
)

func newTicketService(t *testing.T) (*service.TicketService, *mocks.TicketStore, *mocks.PlanStore, *mocks.OrderStore) {
	tickets := mocks.NewTicketStore(t)
	plans := mocks.NewPlanStore(t)
	orders := mocks.NewOrderStore(t)
	return service.NewTicketService(tickets, plans, orders), tickets, plans, orders
}

func TestTicketService_ConfirmPayment(t *testing.T) {
	ctx := context.Background()
	svc, _, _, orders := newTicketService(t)

	conf := model.PaymentConfirmation{OrderID: uuid.NewString(), Provider: "stripe", ProviderReference: "pi_1"}
	grant := &model.Grant{Ticket: model.Ticket{ID: uuid.NewString()}, Accumulated: true}
	orders.On("ConfirmPayment", ctx, conf).Return(grant, nil)

	got, err := svc.ConfirmPayment(ctx, conf)
	require.NoError(t, err)
	assert.True(t, got.Accumulated)
}

func TestTicketService_ConfirmPayment_Replay(t *testing.T) {
	ctx := context.Background()
	svc, _, _, orders := newTicketService(t)

	conf := model.PaymentConfirmation{OrderID: uuid.NewString(), Provider: "stripe", ProviderReference: "pi_1"}
	orders.On("ConfirmPayment", ctx, conf).Return(nil, repository.ErrPaymentProcessed)

	_, err := svc.ConfirmPayment(ctx, conf)
	assert.ErrorIs(t, err, repository.ErrPaymentProcessed)
}

func TestTicketService_ConfirmPayment_Failure(t *testing.T) {
	ctx := context.Background()
	svc, _, _, orders := newTicketService(t)

	conf := model.PaymentConfirmation{OrderID: uuid.NewString(), Provider: "stripe", ProviderReference: "pi_1"}
	orders.On("ConfirmPayment", ctx, conf).Return(nil, errors.New("deadlock detected"))

	_, err := svc.ConfirmPayment(ctx, conf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "confirm payment")
}

func TestTicketService_ActiveTicket(t *testing.T) {
	ctx := context.Background()
	svc, tickets, _, _ := newTicketService(t)

	userID, centerID := uuid.NewString(), uuid.NewString()
	tickets.On("Active", ctx, userID, centerID).Return(nil, repository.ErrNotFound)

	_, err := svc.ActiveTicket(ctx, userID, centerID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.ActiveTicket(ctx, userID, "gym-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketService_Assign(t *testing.T) {
	ctx := context.Background()
	svc, tickets, _, _ := newTicketService(t)

	req := model.AssignTicketRequest{UserID: uuid.NewString(), CenterID: uuid.NewString(), PlanID: uuid.NewString()}
	tickets.On("Assign", ctx, req).Return(&model.Ticket{ID: "t1"}, false, nil)

	got, err := svc.Assign(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
}

func TestTicketService_PlansNeverNil(t *testing.T) {
	ctx := context.Background()
	svc, _, plans, _ := newTicketService(t)

	plans.On("List", ctx).Return(nil, nil)

	got, err := svc.ListPlans(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestTicketService_CreatePlanDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _, plans, _ := newTicketService(t)

	req := model.CreatePlanRequest{Name: "Ten", Code: "ten", PriceCents: 9000}
	plans.On("Create", ctx, req).Return(nil, repository.ErrConflict)

	_, err := svc.CreatePlan(ctx, req)
	assert.ErrorIs(t, err, repository.ErrConflict)
}
