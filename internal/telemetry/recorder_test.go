package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sankum/simuforge/internal/aggregate"
)

func TestObserveResultUpdatesGauges(t *testing.T) {
	r := NewRecorder()
	r.ObserveResult(aggregate.Result{EnergyDriftPercent: -3.5, MaxPenetrationEver: 0.004})

	if v := testutil.ToFloat64(r.energyDrift); v != -3.5 {
		t.Errorf("expected energy drift gauge -3.5, got %v", v)
	}
	if v := testutil.ToFloat64(r.maxPenetration); v != 0.004 {
		t.Errorf("expected max penetration gauge 0.004, got %v", v)
	}
}

func TestObserveResultStabilityTimeNullBecomesNegativeOne(t *testing.T) {
	r := NewRecorder()
	r.ObserveResult(aggregate.Result{StabilityTime: nil})
	if v := testutil.ToFloat64(r.stabilityTime); v != -1 {
		t.Errorf("expected stability time gauge -1 for null stability_time, got %v", v)
	}
}

func TestObserveStatusIncrementsLabelledCounter(t *testing.T) {
	r := NewRecorder()
	r.ObserveStatus("passed")
	r.ObserveStatus("passed")
	r.ObserveStatus("failed")

	if v := testutil.ToFloat64(r.runsTotal.WithLabelValues("passed")); v != 2 {
		t.Errorf("expected passed counter 2, got %v", v)
	}
	if v := testutil.ToFloat64(r.runsTotal.WithLabelValues("failed")); v != 1 {
		t.Errorf("expected failed counter 1, got %v", v)
	}
}
