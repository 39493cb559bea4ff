package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/queue"
)

// Notifier is a mock type for the service.Notifier type
type Notifier struct {
	mock.Mock
}

// Publish provides a mock function with given fields: ctx, ev
func (_m *Notifier) Publish(ctx context.Context, ev queue.BookingEvent) error {
	ret := _m.Called(ctx, ev)
	return ret.Error(0)
}

// NewNotifier creates a new instance of Notifier. It also registers a cleanup
// function to assert the mocks expectations.
func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
