package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/model"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/repository"
	"github.com/Shivanand-hulikatti/group-training-booking/internal/service"
)

// WebhookSecretHeader carries the shared secret on payment callbacks.
const WebhookSecretHeader = "X-Webhook-Secret"

// TicketHandler serves plans, tickets, orders and the payment webhook.
type TicketHandler struct {
	svc           *service.TicketService
	webhookSecret []byte
}

// NewTicketHandler constructs a TicketHandler. An empty webhook secret
// rejects every payment callback.
func NewTicketHandler(svc *service.TicketService, webhookSecret string) *TicketHandler {
	return &TicketHandler{svc: svc, webhookSecret: []byte(webhookSecret)}
}

// ListPlans handles GET /plans
func (h *TicketHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.svc.ListPlans(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

// CreatePlan handles POST /admin/plans
func (h *TicketHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	plan, err := h.svc.CreatePlan(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

// DeactivatePlan handles POST /admin/plans/{id}/deactivate
func (h *TicketHandler) DeactivatePlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.svc.DeactivatePlan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// ActiveTicket handles GET /tickets/active?center_id=
func (h *TicketHandler) ActiveTicket(w http.ResponseWriter, r *http.Request) {
	centerID := r.URL.Query().Get("center_id")
	if centerID == "" {
		writeError(w, http.StatusBadRequest, "center_id is required")
		return
	}
	ticket, err := h.svc.ActiveTicket(r.Context(), UserID(r.Context()), centerID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// ListMine handles GET /tickets/me
func (h *TicketHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.svc.ListMine(r.Context(), UserID(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

// Assign handles POST /admin/tickets
func (h *TicketHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req model.AssignTicketRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	ticket, err := h.svc.Assign(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}

// Deactivate handles POST /admin/tickets/{id}/deactivate
func (h *TicketHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.svc.Deactivate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// CreateOrder handles POST /orders
func (h *TicketHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.CreateOrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	order, err := h.svc.CreateOrder(r.Context(), UserID(r.Context()), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// PaymentWebhook handles POST /webhooks/payments
// A replayed confirmation answers 200 so the provider stops retrying.
func (h *TicketHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	got := []byte(r.Header.Get(WebhookSecretHeader))
	if len(h.webhookSecret) == 0 || subtle.ConstantTimeCompare(got, h.webhookSecret) != 1 {
		writeError(w, http.StatusUnauthorized, "invalid webhook secret")
		return
	}

	var req model.PaymentConfirmation
	if !decodeAndValidate(w, r, &req) {
		return
	}
	grant, err := h.svc.ConfirmPayment(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentProcessed) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "already_processed"})
			return
		}
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "processed", "grant": grant})
}
