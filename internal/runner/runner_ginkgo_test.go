package runner_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sankum/simuforge/internal/baseline"
	"github.com/sankum/simuforge/internal/errs"
	"github.com/sankum/simuforge/internal/metricworld"
	"github.com/sankum/simuforge/internal/numerics"
	"github.com/sankum/simuforge/internal/report"
	"github.com/sankum/simuforge/internal/runner"
	"github.com/sankum/simuforge/internal/solver"
	"github.com/sankum/simuforge/internal/solver/fake"
	"github.com/sankum/simuforge/internal/specmodel"
)

func floatPtr(f float64) *float64 { return &f }

func fakeFactory(cfg solver.Config) solver.Solver {
	return fake.New(cfg)
}

func fallingBoxSpec(steps int, criteria map[string]specmodel.Criterion) *specmodel.ExperimentSpec {
	return &specmodel.ExperimentSpec{
		Metadata: specmodel.Metadata{Name: "falling-box"},
		Physics: specmodel.PhysicsConfig{
			Timestep:         1.0 / 60.0,
			Gravity:          numerics.Vec3{Y: -9.81},
			SolverIterations: 8,
		},
		Duration: specmodel.DurationConfig{Kind: specmodel.DurationKindFixed, Steps: steps},
		Scenario: specmodel.ScenarioConfig{Kind: "builtin", Name: specmodel.ScenarioBoxStack, Params: map[string]float64{"count": 1}},
		Criteria: criteria,
	}
}

var _ = Describe("Run", func() {
	It("reports passed when the spec has no criteria", func() {
		spec := fallingBoxSpec(60, map[string]specmodel.Criterion{})
		rep, err := runner.Run(context.Background(), spec, runner.Options{Factory: fakeFactory})

		Expect(err).NotTo(HaveOccurred())
		Expect(rep.Status).To(Equal(report.StatusPassed))
		Expect(rep.Metrics.FrameCount).To(Equal(60))
	})

	It("reports failed when a criterion is violated", func() {
		spec := fallingBoxSpec(60, map[string]specmodel.Criterion{
			"max_penetration_ever": {Max: floatPtr(0)},
		})
		rep, err := runner.Run(context.Background(), spec, runner.Options{Factory: fakeFactory})

		Expect(err).NotTo(HaveOccurred())
		Expect(rep.Status).To(Equal(report.StatusFailed))
		Expect(rep.CriteriaResults["max_penetration_ever"].Passed).To(BeFalse())
	})

	It("rejects an invalid spec before simulating", func() {
		spec := fallingBoxSpec(60, nil)
		spec.Metadata.Name = ""
		_, err := runner.Run(context.Background(), spec, runner.Options{Factory: fakeFactory})

		Expect(err).To(HaveOccurred())
	})

	It("rejects an unknown criterion tag before simulating", func() {
		spec := fallingBoxSpec(60, map[string]specmodel.Criterion{
			"warp_factor": {Max: floatPtr(1)},
		})
		_, err := runner.Run(context.Background(), spec, runner.Options{Factory: fakeFactory})

		Expect(err).To(HaveOccurred())
		var uc *errs.UnknownCriterion
		Expect(errors.As(err, &uc)).To(BeTrue())
	})

	It("attaches a baseline comparison when a baseline is supplied", func() {
		spec := fallingBoxSpec(60, map[string]specmodel.Criterion{})
		base := &baseline.Baseline{SpecName: "falling-box"}
		rep, err := runner.Run(context.Background(), spec, runner.Options{Factory: fakeFactory, Baseline: base})

		Expect(err).NotTo(HaveOccurred())
		Expect(rep.BaselineComparison).NotTo(BeNil())
	})
})

var _ = Describe("RunSuite", func() {
	It("takes the worst exit code across entries", func() {
		passingSpec := fallingBoxSpec(30, map[string]specmodel.Criterion{})
		failingSpec := fallingBoxSpec(30, map[string]specmodel.Criterion{
			"max_penetration_ever": {Max: floatPtr(0)},
		})

		results := runner.RunSuite(context.Background(), []runner.SuiteEntry{
			{Spec: passingSpec, Baseline: runner.Options{Factory: fakeFactory}},
			{Spec: failingSpec, Baseline: runner.Options{Factory: fakeFactory}},
		})

		Expect(results).To(HaveLen(2))
		Expect(runner.SuiteExitCode(results)).To(Equal(1))
	})
})

var _ = Describe("step observation", func() {
	It("invokes OnStep once per emitted frame", func() {
		spec := fallingBoxSpec(10, map[string]specmodel.Criterion{})
		var seen []int
		_, err := runner.Run(context.Background(), spec, runner.Options{
			Factory: fakeFactory,
			OnStep: func(frame metricworld.MetricFrame) {
				seen = append(seen, frame.Step)
			},
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(HaveLen(10))
		Expect(seen[0]).To(Equal(0))
		Expect(seen[9]).To(Equal(9))
	})
})
