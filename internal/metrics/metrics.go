package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's prometheus collectors.
type Metrics struct {
	// HTTP request totals by method, path, and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency by method and path.
	HTTPRequestDuration *prometheus.HistogramVec

	// Booking attempts by outcome: confirmed, sold_out, invalid_seat_count,
	// rate_limited, duplicate, error.
	BookingsTotal *prometheus.CounterVec

	// End-to-end latency of a booking submission.
	BookingDuration prometheus.Histogram

	// Seats restored by the compensation path. A non-zero rate means
	// booking writes are failing after the ledger decrement.
	SeatsRestoredTotal prometheus.Counter
}

func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bookings_total",
				Help: "Total number of booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		BookingDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "booking_duration_seconds",
				Help:    "Booking submission latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
		),
		SeatsRestoredTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "seats_restored_total",
				Help: "Seats returned to the ledger by booking compensation",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.BookingDuration,
		m.SeatsRestoredTotal,
	)

	return m
}
