package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, BookingActive.CanTransitionTo(BookingCancelled))
	assert.False(t, BookingActive.CanTransitionTo(BookingWaiting))

	assert.True(t, BookingWaiting.CanTransitionTo(BookingActive))
	assert.True(t, BookingWaiting.CanTransitionTo(BookingCancelled))

	assert.False(t, BookingCancelled.CanTransitionTo(BookingActive))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingCancelled))
}

func TestSession_Placement(t *testing.T) {
	s := Session{Capacity: 2, BookedCount: 1}
	assert.Equal(t, BookingActive, s.Placement())

	s.BookedCount = 2
	assert.Equal(t, BookingWaiting, s.Placement())
	assert.True(t, s.IsFull())
}

func TestBooking_ConsumedEntry(t *testing.T) {
	ticketID := "t1"

	created := Booking{Status: BookingActive, TicketID: &ticketID}
	assert.True(t, created.ConsumedEntry())

	promoted := Booking{Status: BookingActive}
	assert.False(t, promoted.ConsumedEntry())

	waiting := Booking{Status: BookingWaiting}
	assert.False(t, waiting.ConsumedEntry())
}

func TestSessionFilter_DayBounds(t *testing.T) {
	_, _, ok := SessionFilter{}.DayBounds()
	assert.False(t, ok)

	day := time.Date(2026, 5, 4, 17, 30, 0, 0, time.UTC)
	start, end, ok := SessionFilter{Day: day}.DayBounds()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC), end)
}
