// Package metrics holds the Prometheus collectors for tree builds, edits and
// sessions.
package metrics

import (
	"github.com/dgallion1/tagtree/internal/edit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tagtree"

// Metrics is safe to use as a nil pointer; every Record method is then a
// no-op.
type Metrics struct {
	builds     *prometheus.CounterVec
	buildNodes prometheus.Histogram
	edits      *prometheus.CounterVec
	rejected   prometheus.Counter
	evictions  prometheus.Counter
}

// New registers the collectors with reg. sessions, when non-nil, backs the
// active_sessions gauge.
func New(reg prometheus.Registerer, sessions func() int) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		builds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Trees built from uploaded documents",
		}, []string{"result"}),

		buildNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_nodes",
			Help:      "Reachable node count of built trees",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}),

		edits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Edits applied to session trees",
		}, []string{"op"}),

		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edit_batches_rejected_total",
			Help:      "Edit batches rejected by validation",
		}),

		evictions: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_evictions_total",
			Help:      "Sessions removed by TTL cleanup",
		}),
	}

	if sessions != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory",
		}, func() float64 { return float64(sessions()) })
	}
	return m
}

// RecordBuild counts a build attempt. nodes is ignored when err is non-nil.
func (m *Metrics) RecordBuild(nodes int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.builds.WithLabelValues("error").Inc()
		return
	}
	m.builds.WithLabelValues("ok").Inc()
	m.buildNodes.Observe(float64(nodes))
}

// RecordEdits counts an applied batch by op.
func (m *Metrics) RecordEdits(edits []edit.Edit) {
	if m == nil {
		return
	}
	for _, e := range edits {
		m.edits.WithLabelValues(string(e.Op)).Inc()
	}
}

func (m *Metrics) RecordRejected() {
	if m == nil {
		return
	}
	m.rejected.Inc()
}

func (m *Metrics) RecordEvictions(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.evictions.Add(float64(n))
}
