package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service"
)

// BookingHandler serves the caller's own bookings.
type BookingHandler struct {
	svc *service.BookingService
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// Create handles POST /bookings
// 201 with status "active" when a seat was taken, 202 with status "waiting"
// when the caller joined the waiting list.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.svc.Create(r.Context(), UserID(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusCreated
	if booking.Status == model.BookingWaiting {
		status = http.StatusAccepted
	}
	writeJSON(w, status, booking)
}

// cancelResponse carries the cancellation outcome next to a top-level status.
type cancelResponse struct {
	Status string `json:"status"`
	*model.CancelResult
}

// Cancel handles DELETE /bookings/{id}
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Cancel(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cancelResponse{Status: string(model.BookingCancelled), CancelResult: res})
}

// ListMine handles GET /bookings/me
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListMine(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
