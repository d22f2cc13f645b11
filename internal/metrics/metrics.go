package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookworm"

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	itemOutcomes  *prometheus.CounterVec
	orders        *prometheus.CounterVec
	authEvents    *prometheus.CounterVec
	orderDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		itemOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "decrements_total",
			Help: "Per-item order outcomes.",
		}, []string{"outcome"}),
		orders: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "placed_total",
			Help: "Order requests by result.",
		}, []string{"result"}),
		authEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "auth", Name: "events_total",
			Help: "Registration and login attempts by event.",
		}, []string{"event"}),
		orderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "orders", Name: "duration_seconds",
			Help:    "Time spent placing an order.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) ItemOutcome(outcome string) {
	if m == nil {
		return
	}
	m.itemOutcomes.WithLabelValues(outcome).Inc()
}

// Order records one order request; result is "ok", "rejected" or "error".
func (m *Metrics) Order(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.orders.WithLabelValues(result).Inc()
	m.orderDuration.Observe(took.Seconds())
}

func (m *Metrics) Auth(event string) {
	if m == nil {
		return
	}
	m.authEvents.WithLabelValues(event).Inc()
}
