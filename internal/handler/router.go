package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Bookings  *BookingHandler
	Sessions  *SessionHandler
	Tickets   *TicketHandler
	JWTSecret []byte
}

// NewRouter builds the HTTP surface.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS)

	r.Get("/health", HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	// Public
	r.Get("/sessions", h.Sessions.List)
	r.Get("/sessions/{id}", h.Sessions.Get)
	r.Get("/plans", h.Tickets.ListPlans)
	r.Post("/webhooks/payments", h.Tickets.PaymentWebhook)

	auth := Authenticate(h.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", h.Bookings.Create)
			r.Get("/me", h.Bookings.ListMine)
			r.Delete("/{id}", h.Bookings.Cancel)
		})
		r.Get("/tickets/me", h.Tickets.ListMine)
		r.Get("/tickets/active", h.Tickets.ActiveTicket)
		r.Post("/orders", h.Tickets.CreateOrder)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth)
		r.Use(RequireAdmin)

		r.Post("/sessions", h.Sessions.Create)
		r.Patch("/sessions/{id}/capacity", h.Sessions.ChangeCapacity)
		r.Post("/sessions/{id}/cancel", h.Sessions.Cancel)
		r.Get("/bookings", h.Sessions.ListBookings)

		r.Post("/plans", h.Tickets.CreatePlan)
		r.Post("/plans/{id}/deactivate", h.Tickets.DeactivatePlan)

		r.Post("/tickets", h.Tickets.Assign)
		r.Post("/tickets/{id}/deactivate", h.Tickets.Deactivate)
	})

	return r
}
