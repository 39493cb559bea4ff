package model

import "time"

// Session is one scheduled occurrence of a class type at a center.
type Session struct {
	ID          string    `json:"id"`
	CenterID    string    `json:"center_id"`
	ClassTypeID string    `json:"class_type_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity"`
	BookedCount int       `json:"booked_count"`
	Lifecycle   Lifecycle `json:"lifecycle"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsFull returns true when no seats remain.
func (s *Session) IsFull() bool {
	return s.BookedCount >= s.Capacity
}

// Placement decides the state a new booking starts in.
func (s *Session) Placement() BookingStatus {
	if s.IsFull() {
		return BookingWaiting
	}
	return BookingActive
}

// SessionFilter narrows session and booking listings. Zero values mean "any".
type SessionFilter struct {
	SessionID string
	CenterID  string
	Day       time.Time
}

// DayBounds returns the UTC [start, end) interval of the filter day.
func (f SessionFilter) DayBounds() (time.Time, time.Time, bool) {
	if f.Day.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	d := f.Day.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1), true
}

// CreateSessionRequest is the admin payload for scheduling a session.
type CreateSessionRequest struct {
	CenterID    string    `json:"center_id" validate:"required,uuid"`
	ClassTypeID string    `json:"class_type_id" validate:"required,uuid"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	Capacity    int       `json:"capacity" validate:"required,gt=0,lte=1000"`
}

// ChangeCapacityRequest is the admin payload for resizing a session.
type ChangeCapacityRequest struct {
	Capacity int `json:"capacity" validate:"gt=0,lte=1000"`
}
