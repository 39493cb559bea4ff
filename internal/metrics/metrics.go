package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts successful booking attempts by the state they landed in.
	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookings",
			Name:      "created_total",
			Help:      "The total number of bookings created",
		},
		[]string{"status"},
	)

	// BookingsCancelled counts cancellations, split by whether an entry went back to a ticket.
	BookingsCancelled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookings",
			Name:      "cancelled_total",
			Help:      "The total number of cancelled bookings",
		},
		[]string{"refunded"},
	)

	WaitlistPromotions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bookings",
			Name:      "promotions_total",
			Help:      "The total number of waiting bookings promoted to active",
		},
	)

	// BookingsRejected counts refused booking attempts by reason
	BookingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookings",
			Name:      "rejected_total",
			Help:      "The total number of rejected booking attempts",
		},
		[]string{"reason"},
	)

	// PaymentsProcessed counts payment confirmations by result (granted, replayed, failed)
	PaymentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "payments",
			Name:      "processed_total",
			Help:      "The total number of processed payment confirmations",
		},
		[]string{"result"},
	)

	// HTTPRequestDuration The time spent serving HTTP requests
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "http",
			Name:      "request_duration_seconds",
			Help:      "The time spent serving HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// NotificationsFailed counts booking events that could not be published
	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notifications",
			Name:      "publish_failed_total",
			Help:      "The total number of booking events that failed to publish",
		},
		[]string{"type"},
	)
)
