package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quill_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"result"},
	)

	// InviteEvents counts invite lifecycle transitions (created|accepted|rejected).
	InviteEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quill_invite_events_total",
			Help: "Total number of invite lifecycle events",
		},
		[]string{"target", "event"},
	)

	// MessagesPosted counts persisted chat messages.
	MessagesPosted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quill_messages_posted_total",
			Help: "Total number of chat messages persisted",
		},
	)

	// RealtimeClients tracks currently connected websocket clients.
	RealtimeClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quill_realtime_clients",
			Help: "Number of connected realtime clients",
		},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quill_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
