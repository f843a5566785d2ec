// Package metrics instruments the store registry with Prometheus
// collectors. A nil *Metrics is valid and records nothing.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the registry's collectors.
type Metrics struct {
	operations    *prometheus.CounterVec
	changeEvents  prometheus.Counter
	managedStores prometheus.Gauge
	loadFailures  prometheus.Counter
	saveFailures  prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "keeper",
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations by operation and outcome",
		}, []string{"op", "outcome"}),
		changeEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keeper",
			Subsystem: "store",
			Name:      "change_events_total",
			Help:      "Total number of change events delivered",
		}),
		managedStores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "keeper",
			Subsystem: "store",
			Name:      "managed_stores",
			Help:      "Current number of stores held by the registry",
		}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keeper",
			Subsystem: "store",
			Name:      "load_failures_total",
			Help:      "Total number of failed store loads, including ignored first loads",
		}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "keeper",
			Subsystem: "store",
			Name:      "save_failures_total",
			Help:      "Total number of failed store saves",
		}),
	}

	for _, c := range []prometheus.Collector{m.operations, m.changeEvents, m.managedStores, m.loadFailures, m.saveFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// RecordOperation counts one operation.
func (m *Metrics) RecordOperation(op string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

// RecordEvents counts delivered change events.
func (m *Metrics) RecordEvents(n int) {
	if m == nil || n == 0 {
		return
	}
	m.changeEvents.Add(float64(n))
}

// SetManagedStores sets the number of stores the registry holds.
func (m *Metrics) SetManagedStores(n int) {
	if m == nil {
		return
	}
	m.managedStores.Set(float64(n))
}

// RecordLoadFailure counts a failed load.
func (m *Metrics) RecordLoadFailure() {
	if m == nil {
		return
	}
	m.loadFailures.Inc()
}

// RecordSaveFailure counts a failed save.
func (m *Metrics) RecordSaveFailure() {
	if m == nil {
		return
	}
	m.saveFailures.Inc()
}

// WriteText gathers g and writes it to w in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
