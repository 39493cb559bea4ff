package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service"
)

// SessionHandler serves the public schedule and the admin session routes.
type SessionHandler struct {
	svc *service.SessionService
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(svc *service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// List handles GET /sessions?center_id=&day=
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	f, err := sessionFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sessions, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Create handles POST /admin/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSessionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// ChangeCapacity handles PATCH /admin/sessions/{id}/capacity
// A capacity below the active bookings answers 409 with active_count.
func (h *SessionHandler) ChangeCapacity(w http.ResponseWriter, r *http.Request) {
	var req model.ChangeCapacityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	session, err := h.svc.ChangeCapacity(r.Context(), chi.URLParam(r, "id"), req.Capacity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Cancel handles POST /admin/sessions/{id}/cancel
func (h *SessionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	cancelled := out.Cancelled
	if cancelled == nil {
		cancelled = []model.Booking{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":            out.Session,
		"cancelled_bookings": cancelled,
	})
}

// ListBookings handles GET /admin/bookings?session_id=&center_id=&day=
func (h *SessionHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	f, err := sessionFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookings, err := h.svc.ListBookings(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
