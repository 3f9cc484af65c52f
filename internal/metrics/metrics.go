package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn processing metrics
var (
	// TurnsTotal counts routed turns by the rule that answered them.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campushelp_turns_total",
			Help: "Total routed turns by matching rule",
		},
		[]string{"rule"},
	)

	// TurnDuration tracks end-to-end turn latency, sentiment call included.
	TurnDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "campushelp_turn_duration_seconds",
			Help:    "Turn processing duration in seconds",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// WelcomesTotal counts welcome texts produced for joining members.
	WelcomesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campushelp_welcomes_total",
			Help: "Total welcome messages produced for new members",
		},
	)
)

// Sentiment probe metrics
var (
	// SentimentOutcomes counts probe results by backend and status.
	SentimentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campushelp_sentiment_outcomes_total",
			Help: "Sentiment probe outcomes by backend and status",
		},
		[]string{"backend", "status"},
	)

	// SentimentDuration tracks backend call latency in seconds.
	SentimentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campushelp_sentiment_duration_seconds",
			Help:    "Sentiment backend call duration in seconds",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"backend"},
	)

	// CircuitBreakerState tracks the breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "campushelp_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// WebSocket channel metrics
var (
	WebSocketConnectionsCurrent = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "campushelp_websocket_connections_current",
			Help: "Current number of open chat WebSocket connections",
		},
	)

	WebSocketRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campushelp_websocket_rate_limited_total",
			Help: "Inbound WebSocket frames rejected by the per-connection rate limiter",
		},
	)
)
