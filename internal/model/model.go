// Package model defines the core domain types for the group training booking system.
package model

import (
	"errors"
	"time"
)

// Lifecycle is the soft-delete state shared by sessions, tickets, plans and centers.
type Lifecycle string

const (
	LifecycleActive      Lifecycle = "active"
	LifecycleDeactivated Lifecycle = "deactivated"
)

// IsActive reports whether the record is still usable.
func (l Lifecycle) IsActive() bool {
	return l == LifecycleActive
}

// ErrEntriesExhausted is returned when a debit is attempted on a limited
// ticket that has no entries left.
var ErrEntriesExhausted = errors.New("ticket has no remaining entries")

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error       string `json:"error"`
	ActiveCount *int   `json:"active_count,omitempty"`
}

// ClassType describes a kind of class offered at a center.
type ClassType struct {
	ID              string    `json:"id"`
	CenterID        string    `json:"center_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Lifecycle       Lifecycle `json:"lifecycle"`
}

// Duration is how long one session of this class lasts.
func (c ClassType) Duration() time.Duration {
	return time.Duration(c.DurationMinutes) * time.Minute
}
