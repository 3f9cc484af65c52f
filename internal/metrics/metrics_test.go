package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		TurnsTotal,
		TurnDuration,
		WelcomesTotal,
		SentimentOutcomes,
		SentimentDuration,
		CircuitBreakerState,
		WebSocketConnectionsCurrent,
		WebSocketRateLimited,
	}

	for _, c := range collectors {
		desc := make(chan *prometheus.Desc, 1)
		c.Describe(desc)
		close(desc)

		require.NotNil(t, <-desc, "metric should have a valid descriptor")
	}
}

func TestCounterVecMetrics(t *testing.T) {
	tests := []struct {
		name   string
		metric *prometheus.CounterVec
		labels prometheus.Labels
		incBy  int
	}{
		{name: "turns by rule", metric: TurnsTotal, labels: prometheus.Labels{"rule": "menu"}, incBy: 3},
		{name: "sentiment outcomes", metric: SentimentOutcomes, labels: prometheus.Labels{"backend": "lexicon", "status": "ok"}, incBy: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.metric.Reset()
			for i := 0; i < tt.incBy; i++ {
				tt.metric.With(tt.labels).Inc()
			}
			assert.Equal(t, float64(tt.incBy), testutil.ToFloat64(tt.metric.With(tt.labels)))
		})
	}
}
