package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_booking", Name: "bookings_created_total", Help: "Total bookings created"})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_booking", Name: "bookings_cancelled_total", Help: "Total bookings cancelled"})
	PaymentsProcessed = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_booking", Name: "payments_processed_total", Help: "Total payments processed"})
	PaymentsDeclined  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_booking", Name: "payments_declined_total", Help: "Total payments declined by the gateway"})
	RefundsIssued     = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ride_booking", Name: "refunds_issued_total", Help: "Total refunds issued"})
	ActiveRides       = promauto.NewGauge(prometheus.GaugeOpts{Namespace: "ride_booking", Name: "active_rides", Help: "Rides currently being tracked"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ride_booking", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ride_booking",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
