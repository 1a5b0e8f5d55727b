// Package metrics exposes prometheus collectors for the DAG executor's
// run, matching the teacher's own dependency on
// github.com/prometheus/client_golang for daemon instrumentation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups the engine-level metrics on a private registry, so
// multiple runs within the same process (e.g. tests) never collide on the
// default global registry.
type Collectors struct {
	Registry *prometheus.Registry

	AtomsExecuted *prometheus.CounterVec
	AtomsFailed   *prometheus.CounterVec
	AtomsSkipped  *prometheus.CounterVec
	AtomDuration  *prometheus.HistogramVec
}

// New builds a Collectors with every metric registered.
func New() *Collectors {
	reg := prometheus.NewRegistry()
	c := &Collectors{
		Registry: reg,
		AtomsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dhd_atoms_executed_total",
			Help: "Number of atoms whose execute() ran to completion.",
		}, []string{"module"}),
		AtomsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dhd_atoms_failed_total",
			Help: "Number of atoms whose execute() returned an error.",
		}, []string{"module"}),
		AtomsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dhd_atoms_skipped_total",
			Help: "Number of atoms skipped because check() reported the desired state already held.",
		}, []string{"module"}),
		AtomDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dhd_atom_duration_seconds",
			Help:    "Wall-clock duration of an atom's check+execute cycle.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module"}),
	}
	reg.MustRegister(c.AtomsExecuted, c.AtomsFailed, c.AtomsSkipped, c.AtomDuration)
	return c
}

// Observe records one atom's outcome and duration.
func (c *Collectors) Observe(module string, outcome string, duration time.Duration) {
	switch outcome {
	case "completed":
		c.AtomsExecuted.WithLabelValues(module).Inc()
	case "failed":
		c.AtomsFailed.WithLabelValues(module).Inc()
	case "skipped", "skipped_due_to_failure":
		c.AtomsSkipped.WithLabelValues(module).Inc()
	}
	c.AtomDuration.WithLabelValues(module).Observe(duration.Seconds())
}
