package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

// TicketStore is a mock type for the service.TicketStore type
type TicketStore struct {
	mock.Mock
}

// ListByUser provides a mock function with given fields: ctx, userID
func (_m *TicketStore) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.Ticket
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Ticket)
	}
	return r0, ret.Error(1)
}

// Active provides a mock function with given fields: ctx, userID, centerID
func (_m *TicketStore) Active(ctx context.Context, userID string, centerID string) (*model.Ticket, error) {
	ret := _m.Called(ctx, userID, centerID)

	var r0 *model.Ticket
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Ticket)
	}
	return r0, ret.Error(1)
}

// Assign provides a mock function with given fields: ctx, req
func (_m *TicketStore) Assign(ctx context.Context, req model.AssignTicketRequest) (*model.Ticket, bool, error) {
	ret := _m.Called(ctx, req)

	var r0 *model.Ticket
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Ticket)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

// Deactivate provides a mock function with given fields: ctx, ticketID
func (_m *TicketStore) Deactivate(ctx context.Context, ticketID string) (*model.Ticket, error) {
	ret := _m.Called(ctx, ticketID)

	var r0 *model.Ticket
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Ticket)
	}
	return r0, ret.Error(1)
}

// NewTicketStore creates a new instance of TicketStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewTicketStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *TicketStore {
	m := &TicketStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
