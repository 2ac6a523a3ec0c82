// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DialogTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialog_turns_total",
			Help: "Code hook turns handled, by intent and dialog action",
		},
		[]string{"intent", "outcome"},
	)

	SlotValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slot_validation_failures_total",
			Help: "Slots rejected by validation",
		},
		[]string{"slot"},
	)

	ReservationsEnqueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservations_enqueued_total",
			Help: "Reservation requests sent to the queue",
		},
	)

	ForwardedMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forwarded_messages_total",
			Help: "Chat messages relayed to the dialog engine",
		},
		[]string{"status"},
	)

	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_runs_total",
			Help: "Recommendation worker runs by result",
		},
		[]string{"status"},
	)

	RecommendationRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_run_duration_seconds",
			Help:    "Duration of one recommendation run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)
