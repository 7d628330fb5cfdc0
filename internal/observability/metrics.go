package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects dispatch metrics for the /metrics endpoint. A nil
// *Metrics is a no-op, so metrics can be disabled by configuration.
type Metrics struct {
	chatRequestsTotal     *prometheus.CounterVec
	providerAttemptsTotal *prometheus.CounterVec
	providerLatency       *prometheus.HistogramVec
	historyTurns          prometheus.Gauge
}

// NewMetrics registers the collectors with the given registerer
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		chatRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "chat_requests_total",
				Help:      "Total number of chat dispatches by outcome",
			},
			[]string{"status"},
		),
		providerAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_attempts_total",
				Help:      "Total provider call attempts by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		providerLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "provider_latency_seconds",
				Help:      "Provider call latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		historyTurns: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "conversation_turns",
				Help:      "Number of turns currently held in conversation history",
			},
		),
	}
}

// ObserveChat records the outcome of one chat dispatch
func (m *Metrics) ObserveChat(status string) {
	if m == nil {
		return
	}
	m.chatRequestsTotal.WithLabelValues(status).Inc()
}

// ObserveAttempt records one provider call attempt
func (m *Metrics) ObserveAttempt(provider string, success bool, latency time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "error"
	}
	m.providerAttemptsTotal.WithLabelValues(provider, outcome).Inc()
	m.providerLatency.WithLabelValues(provider).Observe(latency.Seconds())
}

// SetHistoryTurns tracks the conversation history length
func (m *Metrics) SetHistoryTurns(n int) {
	if m == nil {
		return
	}
	m.historyTurns.Set(float64(n))
}
