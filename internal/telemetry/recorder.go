package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sankum/simuforge/internal/aggregate"
)

// Recorder exposes the latest run's aggregates as Prometheus gauges,
// plus a running counter of run outcomes by status, for the
// `serve-metrics` command (SPEC_FULL.md ambient observability).
type Recorder struct {
	registry *prometheus.Registry

	energyDrift         prometheus.Gauge
	maxPenetration      prometheus.Gauge
	constraintViolations prometheus.Gauge
	averageContactCount prometheus.Gauge
	stabilityTime       prometheus.Gauge
	runsTotal           *prometheus.CounterVec
}

// NewRecorder constructs a Recorder with its own registry, so the
// harness never pollutes the default global registry callers might
// also be using.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.energyDrift = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simuforge_energy_drift_percent",
		Help: "Signed energy drift over the most recent run, as a percentage of initial energy.",
	})
	r.maxPenetration = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simuforge_max_penetration_ever_meters",
		Help: "Maximum contact penetration depth observed during the most recent run.",
	})
	r.constraintViolations = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simuforge_total_constraint_violations",
		Help: "Total contact manifolds exceeding the penetration warning threshold during the most recent run.",
	})
	r.averageContactCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simuforge_average_contact_count",
		Help: "Mean active contact count per step during the most recent run.",
	})
	r.stabilityTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simuforge_stability_time_seconds",
		Help: "Simulated time at which total kinetic energy stabilised below threshold, or -1 if it never did.",
	})
	r.runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "simuforge_runs_total",
		Help: "Total completed runs, labelled by terminal status.",
	}, []string{"status"})

	r.registry.MustRegister(r.energyDrift, r.maxPenetration, r.constraintViolations, r.averageContactCount, r.stabilityTime, r.runsTotal)
	return r
}

// Registry exposes the Recorder's private registry for promhttp.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveResult updates the gauges from a completed run's aggregates.
func (r *Recorder) ObserveResult(agg aggregate.Result) {
	r.energyDrift.Set(agg.EnergyDriftPercent)
	r.maxPenetration.Set(agg.MaxPenetrationEver)
	r.constraintViolations.Set(float64(agg.TotalConstraintViolations))
	r.averageContactCount.Set(agg.AverageContactCount)
	if agg.StabilityTime != nil {
		r.stabilityTime.Set(*agg.StabilityTime)
	} else {
		r.stabilityTime.Set(-1)
	}
}

// ObserveStatus increments the run-outcome counter for one status label.
func (r *Recorder) ObserveStatus(status string) {
	r.runsTotal.WithLabelValues(status).Inc()
}
