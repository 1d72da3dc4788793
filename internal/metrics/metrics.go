// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menu_http_requests_total",
		Help: "HTTP requests by method, path and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "menu_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menu_sessions_started_total",
		Help: "Chatbot sessions opened.",
	})

	SessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "menu_sessions_expired_total",
		Help: "Chatbot sessions closed by inactivity.",
	})

	RatingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menu_ratings_submitted_total",
		Help: "Ratings received, by category.",
	}, []string{"category"})

	StaffNotifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "menu_staff_notifications_total",
		Help: "Staff notifications created, by kind.",
	}, []string{"kind"})
)
