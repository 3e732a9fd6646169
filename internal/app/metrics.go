package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Operation results recorded on journal_reflection_operations_total.
const (
	resultSuccess    = "success"
	resultInvalid    = "invalid"
	resultNotFound   = "not_found"
	resultError      = "error"
	operationCreate  = "create"
	operationList    = "list"
	operationUpdate  = "update"
	operationDelete  = "delete"
	metricsNamespace = "journal"
)

// Metrics holds the Prometheus collectors for reflection use cases.
// A nil *Metrics records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	stored     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on /-/metrics.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reflection_operations_total",
			Help:      "Reflection use case invocations by operation and result.",
		}, []string{"operation", "result"}),
		stored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "reflections_stored",
			Help:      "Number of reflections in the store after the last operation.",
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.stored} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(operation, result string) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) setStored(n int) {
	if m == nil {
		return
	}

	m.stored.Set(float64(n))
}
