package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
)

// SessionStore is a mock type for the service.SessionStore type
type SessionStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, req
func (_m *SessionStore) Create(ctx context.Context, req model.CreateSessionRequest) (*model.Session, error) {
	ret := _m.Called(ctx, req)

	var r0 *model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}
	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *SessionStore) GetByID(ctx context.Context, id string) (*model.Session, error) {
	ret := _m.Called(ctx, id)

	var r0 *model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, f
func (_m *SessionStore) List(ctx context.Context, f model.SessionFilter) ([]model.Session, error) {
	ret := _m.Called(ctx, f)

	var r0 []model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.Session)
	}
	return r0, ret.Error(1)
}

// ChangeCapacity provides a mock function with given fields: ctx, sessionID, capacity
func (_m *SessionStore) ChangeCapacity(ctx context.Context, sessionID string, capacity int) (*model.Session, error) {
	ret := _m.Called(ctx, sessionID, capacity)

	var r0 *model.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.Session)
	}
	return r0, ret.Error(1)
}

// Cancel provides a mock function with given fields: ctx, sessionID, policy
func (_m *SessionStore) Cancel(ctx context.Context, sessionID string, policy repository.CancelPolicy) (*repository.SessionCancellation, error) {
	ret := _m.Called(ctx, sessionID, policy)

	var r0 *repository.SessionCancellation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*repository.SessionCancellation)
	}
	return r0, ret.Error(1)
}

// NewSessionStore creates a new instance of SessionStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
