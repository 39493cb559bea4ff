package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

// PlanStore is a mock type for the service.PlanStore type
type PlanStore struct {
	mock.Mock
}

// List provides a mock function with given fields: ctx
func (_m *PlanStore) List(ctx context.Context) ([]model.TicketPlan, error) {
	ret := _m.Called(ctx)

	var r0 []model.TicketPlan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.TicketPlan)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, req
func (_m *PlanStore) Create(ctx context.Context, req model.CreatePlanRequest) (*model.TicketPlan, error) {
	ret := _m.Called(ctx, req)

	var r0 *model.TicketPlan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.TicketPlan)
	}
	return r0, ret.Error(1)
}

// Deactivate provides a mock function with given fields: ctx, id
func (_m *PlanStore) Deactivate(ctx context.Context, id string) (*model.TicketPlan, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.TicketPlan
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.TicketPlan)
	}
	return r0, ret.Error(1)
}

// NewPlanStore creates a new instance of PlanStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewPlanStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *PlanStore {
	m := &PlanStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
