package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
)

// BookingStore is a mock type for the service.BookingStore type
type BookingStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, userID, sessionID
func (_m *BookingStore) Create(ctx context.Context, userID string, sessionID string) (*model.Booking, error) {
	ret := _m.Called(ctx, userID, sessionID)

	var r0 *model.Booking
	if rf, ok := ret.Get(0).(func(context.Context, string, string) *model.Booking); ok {
		r0 = rf(ctx, userID, sessionID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Booking)
	}
	return r0, ret.Error(1)
}

// Cancel provides a mock function with given fields: ctx, userID, bookingID
func (_m *BookingStore) Cancel(ctx context.Context, userID string, bookingID string) (*model.CancelResult, error) {
	ret := _m.Called(ctx, userID, bookingID)

	var r0 *model.CancelResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.CancelResult)
	}
	return r0, ret.Error(1)
}

// ListByUser provides a mock function with given fields: ctx, userID
func (_m *BookingStore) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.Booking
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Booking)
	}
	return r0, ret.Error(1)
}

// ListForAdmin provides a mock function with given fields: ctx, f
func (_m *BookingStore) ListForAdmin(ctx context.Context, f model.SessionFilter) ([]model.Booking, error) {
	ret := _m.Called(ctx, f)

	var r0 []model.Booking
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Booking)
	}
	return r0, ret.Error(1)
}

// NewBookingStore creates a new instance of BookingStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewBookingStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *BookingStore {
	m := &BookingStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
