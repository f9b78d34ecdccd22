// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	TaskStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_status_changes_total",
			Help: "Task status changes by target status and whether the move followed the review flow",
		},
		[]string{"status", "canonical"},
	)

	PaymentsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "milestone_payment_updates_total",
			Help: "Milestone payment status updates by resulting status",
		},
		[]string{"status"},
	)

	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Public booking requests by outcome",
		},
		[]string{"outcome"}, // outcome: created, conflict
	)

	InquiriesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_inquiries_received_total",
			Help: "Contact form submissions stored",
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cache_lookups_total",
			Help: "Public content cache lookups by result",
		},
		[]string{"result"}, // result: hit, miss
	)
)

func RecordHTTPRequestDuration(method, path string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(duration.Seconds())
}

func RecordTaskStatusChange(status string, canonical bool) {
	TaskStatusChanges.WithLabelValues(status, strconv.FormatBool(canonical)).Inc()
}

func RecordPayment(status string) {
	PaymentsRecorded.WithLabelValues(status).Inc()
}

func RecordBooking(outcome string) {
	BookingsCreated.WithLabelValues(outcome).Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	CacheLookups.WithLabelValues("miss").Inc()
}
