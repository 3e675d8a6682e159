// Package aggregate rolls a finite sequence of metricworld.MetricFrame
// into the scalar aggregates the criteria evaluator and baseline
// comparator consume (spec.md §4.3).
package aggregate

import "github.com/sankum/simuforge/internal/metricworld"

// StabilizationWindow and StabilizationKineticEnergy are the
// parameters of the stability detector: the smallest step k such that
// total kinetic energy stays below StabilizationKineticEnergy for
// StabilizationWindow consecutive frames.
const (
	StabilizationWindow        = 30
	StabilizationKineticEnergy = 0.1
)

// energyDriftEpsilon is the ε floor for energy_drift_percent's
// denominator, so a spec whose initial energy is exactly (or nearly)
// zero still produces a finite, meaningful percentage instead of
// silently reporting 0.
const energyDriftEpsilon = 1e-9

// Result is the aggregate summary produced from a frame sequence.
type Result struct {
	InitialEnergy             float64  `json:"initial_energy" yaml:"initial_energy"`
	FinalEnergy               float64  `json:"final_energy" yaml:"final_energy"`
	EnergyDriftPercent        float64  `json:"energy_drift_percent" yaml:"energy_drift_percent"`
	MaxPenetrationEver        float64  `json:"max_penetration_ever" yaml:"max_penetration_ever"`
	TotalConstraintViolations int      `json:"total_constraint_violations" yaml:"total_constraint_violations"`
	AverageContactCount       float64  `json:"average_contact_count" yaml:"average_contact_count"`
	FrameCount                int      `json:"frame_count" yaml:"frame_count"`
	StabilizationStep         *int     `json:"stabilization_step" yaml:"stabilization_step"`
	StabilityTime             *float64 `json:"stability_time" yaml:"stability_time"`
}

// Aggregate reduces frames (assumed to be in emission order) into a
// Result. dt is the experiment's timestep, used to convert
// stabilization_step into stability_time.
func Aggregate(frames []metricworld.MetricFrame, dt float64) Result {
	var result Result
	result.FrameCount = len(frames)
	if len(frames) == 0 {
		return result
	}

	result.InitialEnergy = frames[0].Energy.Total
	result.FinalEnergy = frames[len(frames)-1].Energy.Total
	denom := absFloat(result.InitialEnergy)
	if denom < energyDriftEpsilon {
		denom = energyDriftEpsilon
	}
	result.EnergyDriftPercent = 100 * (result.FinalEnergy - result.InitialEnergy) / denom

	var totalContacts int
	for _, f := range frames {
		if f.Contacts.MaxPenetration > result.MaxPenetrationEver {
			result.MaxPenetrationEver = f.Contacts.MaxPenetration
		}
		result.TotalConstraintViolations += f.Contacts.ConstraintViolations
		totalContacts += f.Contacts.ContactCount
	}
	result.AverageContactCount = float64(totalContacts) / float64(len(frames))

	result.StabilizationStep, result.StabilityTime = detectStabilization(frames, dt)

	return result
}

func detectStabilization(frames []metricworld.MetricFrame, dt float64) (*int, *float64) {
	n := len(frames)
	if n < StabilizationWindow {
		return nil, nil
	}

	for k := 0; k <= n-StabilizationWindow; k++ {
		allBelow := true
		for j := k; j < k+StabilizationWindow; j++ {
			if frames[j].Energy.Kinetic >= StabilizationKineticEnergy {
				allBelow = false
				break
			}
		}
		if allBelow {
			step := k
			time := float64(k) * dt
			return &step, &time
		}
	}
	return nil, nil
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
