package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/skyopshq/skyops/core/metrics"
)

// PromSink records engine events in Prometheus metrics.
type PromSink struct {
	assignments *prometheus.CounterVec
	conflicts   *prometheus.CounterVec
	cost        prometheus.Histogram
	roster      *prometheus.GaugeVec
}

// NewPromSink registers engine metrics on the default Prometheus
// registerer. The exposition server is started separately with
// StartPromServer.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	assignments := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyops_assignments_total",
		Help: "Total number of assignments written",
	}, []string{"project_id"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "skyops_conflicts_total",
		Help: "Total number of conflicts detected",
	}, []string{"kind", "severity"})
	cost := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "skyops_assignment_projected_cost",
		Help:    "Projected mission cost at assignment time",
		Buckets: prometheus.ExponentialBuckets(100, 4, 8),
	})
	roster := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "skyops_roster_size",
		Help: "Entities held in the roster store",
	}, []string{"entity"})

	for _, c := range []prometheus.Collector{assignments, conflicts, cost, roster} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return &PromSink{assignments: assignments, conflicts: conflicts, cost: cost, roster: roster}, nil
}

// RecordAssignment increments the assignment counter and observes the
// projected cost.
func (s *PromSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	s.assignments.WithLabelValues(rec.MissionID).Inc()
	s.cost.Observe(rec.ProjectedCost)
	return nil
}

// RecordConflicts increments the conflict counter per kind and severity.
func (s *PromSink) RecordConflicts(recs []coremetrics.ConflictRecord) error {
	for _, r := range recs {
		s.conflicts.WithLabelValues(r.Kind, r.Severity).Inc()
	}
	return nil
}

// RecordRosterSize sets the roster gauges after a bulk load.
func (s *PromSink) RecordRosterSize(pilots, drones, missions int) error {
	s.roster.WithLabelValues("pilots").Set(float64(pilots))
	s.roster.WithLabelValues("drones").Set(float64(drones))
	s.roster.WithLabelValues("missions").Set(float64(missions))
	return nil
}
