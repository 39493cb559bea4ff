package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/queue"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service/mocks"
)

func eventOfType(t queue.EventType) any {
	return mock.MatchedBy(func(ev queue.BookingEvent) bool { return ev.Type == t })
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewBookingStore(t)
	notifier := mocks.NewNotifier(t)
	cache := newMemoryCache()
	svc := service.NewBookingService(store, cache, notifier)

	userID, sessionID := uuid.NewString(), uuid.NewString()
	booking := &model.Booking{ID: uuid.NewString(), UserID: userID, SessionID: sessionID, Status: model.BookingWaiting}

	store.On("Create", ctx, userID, sessionID).Return(booking, nil)
	notifier.On("Publish", mock.Anything, eventOfType(queue.BookingCreated)).Return(nil)

	got, err := svc.Create(ctx, userID, model.CreateBookingRequest{SessionID: sessionID})

	require.NoError(t, err)
	assert.Equal(t, model.BookingWaiting, got.Status)
	assert.Equal(t, 1, cache.invalidated)
}

func TestBookingService_Create_PublishFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewBookingStore(t)
	notifier := mocks.NewNotifier(t)
	svc := service.NewBookingService(store, newMemoryCache(), notifier)

	userID, sessionID := uuid.NewString(), uuid.NewString()
	store.On("Create", ctx, userID, sessionID).
		Return(&model.Booking{ID: uuid.NewString(), Status: model.BookingActive}, nil)
	notifier.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	got, err := svc.Create(ctx, userID, model.CreateBookingRequest{SessionID: sessionID})

	require.NoError(t, err)
	assert.Equal(t, model.BookingActive, got.Status)
}

func TestBookingService_Create_Errors(t *testing.T) {
	ctx := context.Background()
	userID, sessionID := uuid.NewString(), uuid.NewString()

	tests := []struct {
		name    string
		repoErr error
		wantErr error
	}{
		{"no ticket", repository.ErrForbidden, repository.ErrForbidden},
		{"duplicate", repository.ErrAlreadyBooked, repository.ErrConflict},
		{"missing session", repository.ErrNotFound, repository.ErrNotFound},
		{"database failure", errors.New("connection reset"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewBookingStore(t)
			cache := newMemoryCache()
			svc := service.NewBookingService(store, cache, mocks.NewNotifier(t))

			store.On("Create", ctx, userID, sessionID).Return(nil, tt.repoErr)

			_, err := svc.Create(ctx, userID, model.CreateBookingRequest{SessionID: sessionID})

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Contains(t, err.Error(), "create booking")
			}
			assert.Zero(t, cache.invalidated)
		})
	}
}

func TestBookingService_Create_MalformedSessionID(t *testing.T) {
	svc := service.NewBookingService(mocks.NewBookingStore(t), newMemoryCache(), mocks.NewNotifier(t))

	_, err := svc.Create(context.Background(), uuid.NewString(), model.CreateBookingRequest{SessionID: "42"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingService_Cancel_PublishesPromotion(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewBookingStore(t)
	notifier := mocks.NewNotifier(t)
	cache := newMemoryCache()
	svc := service.NewBookingService(store, cache, notifier)

	userID, bookingID, ticketID := uuid.NewString(), uuid.NewString(), uuid.NewString()
	res := &model.CancelResult{
		Booking:          model.Booking{ID: bookingID, UserID: userID, Status: model.BookingCancelled},
		RefundedTicketID: &ticketID,
		Promoted:         &model.Booking{ID: uuid.NewString(), Status: model.BookingActive},
		CenterID:         uuid.NewString(),
	}
	store.On("Cancel", ctx, userID, bookingID).Return(res, nil)
	notifier.On("Publish", mock.Anything, eventOfType(queue.BookingCancelled)).Return(nil).Once()
	notifier.On("Publish", mock.Anything, mock.MatchedBy(func(ev queue.BookingEvent) bool {
		return ev.Type == queue.BookingPromoted && ev.BookingID == res.Promoted.ID && ev.CenterID == res.CenterID
	})).Return(nil).Once()

	got, err := svc.Cancel(ctx, userID, bookingID)

	require.NoError(t, err)
	assert.Equal(t, ticketID, *got.RefundedTicketID)
	assert.Equal(t, 1, cache.invalidated)
}

func TestBookingService_Cancel_NotFound(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewBookingStore(t)
	svc := service.NewBookingService(store, newMemoryCache(), mocks.NewNotifier(t))

	userID, bookingID := uuid.NewString(), uuid.NewString()
	store.On("Cancel", ctx, userID, bookingID).Return(nil, repository.ErrNotFound)

	_, err := svc.Cancel(ctx, userID, bookingID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Cancel(ctx, userID, "not-a-uuid")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestBookingService_ListMine_NeverNil(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewBookingStore(t)
	svc := service.NewBookingService(store, newMemoryCache(), mocks.NewNotifier(t))

	store.On("ListByUser", ctx, "u1").Return(nil, nil)

	got, err := svc.ListMine(ctx, "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
