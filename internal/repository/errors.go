package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested resource does not exist or is not
// owned by the caller.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the user holds no ticket that qualifies for
// the session's center at the time of booking.
var ErrForbidden = errors.New("no active ticket for this center")

// ErrConflict signals that the operation cannot proceed because of the
// current state of the data.
var ErrConflict = errors.New("conflict")

// ErrAlreadyBooked is returned when the user already holds an active or
// waiting booking for the session.
var ErrAlreadyBooked = fmt.Errorf("%w: already booked for this session", ErrConflict)

// ErrPaymentProcessed is returned when a payment confirmation is replayed.
var ErrPaymentProcessed = fmt.Errorf("%w: payment already processed", ErrConflict)

// ErrValidation is returned for malformed input.
var ErrValidation = errors.New("validation failed")

// CapacityError rejects a capacity change that would strand active bookings.
type CapacityError struct {
	Requested int
	Active    int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity %d is lower than active bookings (%d)", e.Requested, e.Active)
}

// Is makes CapacityError match ErrConflict.
func (e *CapacityError) Is(target error) bool {
	return target == ErrConflict
}
