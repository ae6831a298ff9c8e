// Package metric exposes Prometheus collectors for an address space.
//
// A nil *Metrics is valid and records nothing, so components accept one
// unconditionally.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
)

const namespace = "addressspace"

// Metrics holds the collectors of one address space.
type Metrics struct {
	nodes          *prometheus.GaugeVec
	references     prometheus.Gauge
	namespaces     prometheus.Gauge
	valueWrites    *prometheus.CounterVec
	writeRejected  *prometheus.CounterVec
	browseTotal    prometheus.Counter
	browseDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg. It returns nil
// when reg is nil.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		return nil
	}

	m := &Metrics{
		nodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "nodes",
			Help:      "Nodes currently registered, by node class",
		}, []string{"class"}),

		references: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "references",
			Help:      "Forward references currently registered",
		}),

		namespaces: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "namespaces",
			Help:      "Namespaces in the namespace array",
		}),

		valueWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "value",
			Name:      "writes_total",
			Help:      "Successful variable value stores",
		}, []string{"op"}),

		writeRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "value",
			Name:      "write_rejections_total",
			Help:      "Variable writes rejected by type or enumeration checks",
		}, []string{"op", "reason"}),

		browseTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "browse",
			Name:      "requests_total",
			Help:      "Browse requests served",
		}),

		browseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "browse",
			Name:      "duration_seconds",
			Help:      "Time spent answering browse requests",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}

	reg.MustRegister(
		m.nodes,
		m.references,
		m.namespaces,
		m.valueWrites,
		m.writeRejected,
		m.browseTotal,
		m.browseDuration,
	)
	return m
}

// NodeAdded counts a new node of class c.
func (m *Metrics) NodeAdded(c node.Class) {
	if m == nil {
		return
	}
	m.nodes.WithLabelValues(c.String()).Inc()
}

// NodeRemoved uncounts a deleted node of class c.
func (m *Metrics) NodeRemoved(c node.Class) {
	if m == nil {
		return
	}
	m.nodes.WithLabelValues(c.String()).Dec()
}

// SetReferences records the current number of forward references.
func (m *Metrics) SetReferences(n int) {
	if m == nil {
		return
	}
	m.references.Set(float64(n))
}

// SetNamespaces records the length of the namespace array.
func (m *Metrics) SetNamespaces(n int) {
	if m == nil {
		return
	}
	m.namespaces.Set(float64(n))
}

// ValueWritten counts a successful store by op.
func (m *Metrics) ValueWritten(op string) {
	if m == nil {
		return
	}
	m.valueWrites.WithLabelValues(op).Inc()
}

// WriteRejected counts a rejected write by op and error class.
func (m *Metrics) WriteRejected(op string, err error) {
	if m == nil {
		return
	}
	m.writeRejected.WithLabelValues(op, modelerr.Reason(err)).Inc()
}

// Browsed records one browse request that took d.
func (m *Metrics) Browsed(d time.Duration) {
	if m == nil {
		return
	}
	m.browseTotal.Inc()
	m.browseDuration.Observe(d.Seconds())
}

// Reset zeroes the model gauges after the address space is disposed.
// Counters keep their totals.
func (m *Metrics) Reset() {
	if m == nil {
		return
	}
	m.nodes.Reset()
	m.references.Set(0)
	m.namespaces.Set(0)
}
