package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pushchain/tl-lottery/ledger"
)

const metricsNamespace = "lotteryd"

// Metrics are the node's prometheus collectors.
type Metrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Events            *prometheus.CounterVec
	Height            prometheus.Gauge
	BlockTime         prometheus.Gauge
	BrokenInvariants  prometheus.Counter
}

// NewMetrics registers the node collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Delivered operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent executing and committing an operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "events_total",
			Help:      "Events emitted by committed operations.",
		}, []string{"type"}),
		Height: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "height",
			Help:      "Height of the last committed block.",
		}),
		BlockTime: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "block_time_seconds",
			Help:      "Unix time of the last committed block.",
		}),
		BrokenInvariants: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "broken_invariants_total",
			Help:      "Invariant violations detected after an operation.",
		}),
	}
}

func (m *Metrics) observe(op string, started time.Time, res ledger.Result, err error) {
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	if err != nil {
		m.Operations.WithLabelValues(op, "error").Inc()
		return
	}

	m.Operations.WithLabelValues(op, "ok").Inc()
	for _, ev := range res.Events {
		m.Events.WithLabelValues(ev.Type).Inc()
	}
	m.Height.Set(float64(res.Header.Height))
	m.BlockTime.Set(float64(res.Header.Time.Unix()))
}
