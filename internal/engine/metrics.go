package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch outcome label values.
const (
	outcomeOK      = "ok"
	outcomeEmpty   = "empty"
	outcomeOffline = "offline"
)

// Metrics counts routing activity. Counters are registered once on the
// default registry and shared by every engine instance.
type Metrics struct {
	messages   prometheus.Counter
	dispatches *prometheus.CounterVec
	fallbacks  prometheus.Counter
}

var sharedMetrics = newMetrics()

func newMetrics() *Metrics {
	return &Metrics{
		messages: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "switchd",
			Name:      "messages_total",
			Help:      "User messages handled by the routing engine.",
		}),
		dispatches: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "switchd",
			Name:      "dispatch_total",
			Help:      "Specialist dispatches by role and outcome.",
		}, []string{"specialist", "outcome"}),
		fallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "switchd",
			Name:      "policy_fallback_total",
			Help:      "Routing decisions that required a policy fallback.",
		}),
	}
}

func (m *Metrics) messageHandled() {
	m.messages.Inc()
}

func (m *Metrics) dispatch(role, outcome string) {
	m.dispatches.WithLabelValues(role, outcome).Inc()
}

func (m *Metrics) policyFallback() {
	m.fallbacks.Inc()
}
