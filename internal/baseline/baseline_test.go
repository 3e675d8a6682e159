package baseline

import (
	"testing"

	"github.com/sankum/simuforge/internal/aggregate"
	"github.com/sankum/simuforge/internal/criteria"
)

func TestCompareAcceptsWhenPassedAndNoRegression(t *testing.T) {
	base := Baseline{SpecName: "falling-box", Metrics: aggregate.Result{MaxPenetrationEver: 0.01, EnergyDriftPercent: 5}}
	current := aggregate.Result{MaxPenetrationEver: 0.009, EnergyDriftPercent: 5}

	cmp := Compare(current, criteria.StatusPassed, base)
	if cmp.Recommendation != RecommendationAccept {
		t.Errorf("expected ACCEPT, got %v", cmp.Recommendation)
	}
}

func TestCompareRejectsWhenStatusFailed(t *testing.T) {
	base := Baseline{SpecName: "falling-box", Metrics: aggregate.Result{MaxPenetrationEver: 0.01}}
	current := aggregate.Result{MaxPenetrationEver: 0.005}

	cmp := Compare(current, criteria.StatusFailed, base)
	if cmp.Recommendation != RecommendationReject {
		t.Errorf("expected REJECT on failed status, got %v", cmp.Recommendation)
	}
}

func TestCompareRejectsOnUnoffsetRegression(t *testing.T) {
	base := Baseline{SpecName: "falling-box", Metrics: aggregate.Result{MaxPenetrationEver: 0.01, TotalConstraintViolations: 0}}
	current := aggregate.Result{MaxPenetrationEver: 0.05, TotalConstraintViolations: 0}

	cmp := Compare(current, criteria.StatusPassed, base)
	if cmp.Recommendation != RecommendationReject {
		t.Errorf("expected REJECT on regression with no improvement, got %v", cmp.Recommendation)
	}
}

func TestCompareReviewsOnMixedMovement(t *testing.T) {
	base := Baseline{SpecName: "falling-box", Metrics: aggregate.Result{MaxPenetrationEver: 0.01, TotalConstraintViolations: 10}}
	current := aggregate.Result{MaxPenetrationEver: 0.05, TotalConstraintViolations: 0}

	cmp := Compare(current, criteria.StatusPassed, base)
	if cmp.Recommendation != RecommendationReview {
		t.Errorf("expected REVIEW on mixed improvement/regression, got %v", cmp.Recommendation)
	}
}

func TestCompareUsesAbsoluteToleranceNearZero(t *testing.T) {
	base := Baseline{SpecName: "falling-box", Metrics: aggregate.Result{MaxPenetrationEver: 0}}
	current := aggregate.Result{MaxPenetrationEver: 1e-9}

	cmp := Compare(current, criteria.StatusPassed, base)
	for _, m := range cmp.Metrics {
		if m.Tag == "max_penetration_ever" && m.Verdict != VerdictNeutral {
			t.Errorf("expected neutral verdict within absolute tolerance, got %v", m.Verdict)
		}
	}
}

func TestAverageContactCountNeverClassified(t *testing.T) {
	base := Baseline{SpecName: "falling-box", Metrics: aggregate.Result{AverageContactCount: 1}}
	current := aggregate.Result{AverageContactCount: 100}

	cmp := Compare(current, criteria.StatusPassed, base)
	for _, m := range cmp.Metrics {
		if m.Tag == "average_contact_count" && m.Verdict != VerdictNeutral {
			t.Errorf("expected average_contact_count to always report neutral, got %v", m.Verdict)
		}
	}
}

func TestLoadRejectsMissingSpecName(t *testing.T) {
	_, err := Load([]byte("metrics:\n  frame_count: 10\n"))
	if err == nil {
		t.Fatal("expected error for baseline missing spec_name")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	original := Baseline{SpecName: "falling-box", Metrics: aggregate.Result{FrameCount: 60, MaxPenetrationEver: 0.002}}
	data, err := Save(original)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.SpecName != original.SpecName || loaded.Metrics.FrameCount != original.Metrics.FrameCount {
		t.Errorf("round trip mismatch: got %+v", loaded)
	}
}
