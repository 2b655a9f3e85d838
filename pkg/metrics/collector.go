// Package metrics exposes Prometheus counters and a histogram for sync
// runs, served over HTTP while a `sync --metrics-addr` run is in flight.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the orchestrator for this domain's sync metrics: per-run
// record counts and duration, labeled by entity and mode. Grounded on
// the teacher's metrics.Collector (registry ownership, Enabled gate on
// every recording method), trimmed from its request/provider/policy/cost/
// cache subsystems down to the one concern a sync run produces.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	recordsTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	batchesTotal *prometheus.CounterVec
}

// NewCollector creates a Collector. If registry is nil, a fresh private
// registry is used (not the global default, so concurrent test runs
// don't collide on metric registration).
func NewCollector(enabled bool, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		enabled:  enabled,
		registry: registry,
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swsync",
			Name:      "records_total",
			Help:      "Records processed by a sync run, by entity, mode, and outcome.",
		}, []string{"entity", "mode", "outcome"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swsync",
			Name:      "errors_total",
			Help:      "Errors encountered during a sync run, by entity, mode, and kind.",
		}, []string{"entity", "mode", "kind"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "swsync",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a complete sync run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		}, []string{"entity", "mode"}),
		batchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swsync",
			Name:      "batches_total",
			Help:      "Import batches submitted, by entity and outcome.",
		}, []string{"entity", "outcome"}),
	}

	registry.MustRegister(c.recordsTotal, c.errorsTotal, c.runDuration, c.batchesTotal)
	return c
}

// RecordOutcome increments the record counter for entity/mode/outcome
// ("succeeded" or "failed") by n.
func (c *Collector) RecordOutcome(entity, mode, outcome string, n int) {
	if !c.enabled || n == 0 {
		return
	}
	c.recordsTotal.WithLabelValues(entity, mode, outcome).Add(float64(n))
}

// RecordError increments the error counter for entity/mode/kind.
func (c *Collector) RecordError(entity, mode, kind string) {
	if !c.enabled {
		return
	}
	c.errorsTotal.WithLabelValues(entity, mode, kind).Inc()
}

// ObserveRunDuration records one completed run's wall-clock duration.
func (c *Collector) ObserveRunDuration(entity, mode string, d time.Duration) {
	if !c.enabled {
		return
	}
	c.runDuration.WithLabelValues(entity, mode).Observe(d.Seconds())
}

// RecordBatch increments the batch counter for entity/outcome ("ok" or
// "split").
func (c *Collector) RecordBatch(entity, outcome string) {
	if !c.enabled {
		return
	}
	c.batchesTotal.WithLabelValues(entity, outcome).Inc()
}

// Registry returns the Prometheus registry backing this collector, for
// mounting with promhttp.HandlerFor.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
