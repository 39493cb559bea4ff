package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

// OrderStore is a mock type for the service.OrderStore type
type OrderStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, userID, req
func (_m *OrderStore) Create(ctx context.Context, userID string, req model.CreateOrderRequest) (*model.Order, error) {
	ret := _m.Called(ctx, userID, req)

	var r0 *model.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Order)
	}
	return r0, ret.Error(1)
}

// ConfirmPayment provides a mock function with given fields: ctx, c
func (_m *OrderStore) ConfirmPayment(ctx context.Context, c model.PaymentConfirmation) (*model.Grant, error) {
	ret := _m.Called(ctx, c)

	var r0 *model.Grant
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Grant)
	}
	return r0, ret.Error(1)
}

// NewOrderStore creates a new instance of OrderStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewOrderStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderStore {
	m := &OrderStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
