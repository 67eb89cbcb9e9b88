package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stagesim/stagesim/sim/workload"
)

// Inverse is the variate whose cumulative probability equals the input.
type Inverse struct {
	Value float64 `json:"value"`
	// ZScore is the standard normal quantile, set for the normal family only.
	ZScore *float64 `json:"z_score,omitempty"`
}

// InverseCDF maps a probability strictly inside (0, 1) back to a variate of
// the given distribution. Normal takes mean and variance, exponential its
// mean, uniform min and max.
func InverseCDF(spec workload.DistSpec, p float64) (*Inverse, error) {
	if !(p > 0 && p < 1) {
		return nil, fmt.Errorf("probability must be strictly between 0 and 1, got %v", p)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	family, _ := workload.ParseFamily(string(spec.Family))
	switch family {
	case workload.FamilyNormal:
		z := distuv.UnitNormal.Quantile(p)
		return &Inverse{Value: spec.Param1 + z*math.Sqrt(spec.Param2), ZScore: &z}, nil
	case workload.FamilyExponential:
		return &Inverse{Value: distuv.Exponential{Rate: 1 / spec.Param1}.Quantile(p)}, nil
	default:
		return &Inverse{Value: distuv.Uniform{Min: spec.Param1, Max: spec.Param2}.Quantile(p)}, nil
	}
}
