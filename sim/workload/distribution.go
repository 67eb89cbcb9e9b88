package workload

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Family names a parametric distribution family.
type Family string

const (
	// FamilyNormal is parameterized by mean (Param1) and variance (Param2).
	FamilyNormal Family = "normal"
	// FamilyExponential is parameterized by its mean (Param1). Param2 is ignored.
	FamilyExponential Family = "exponential"
	// FamilyUniform is parameterized by min (Param1) and max (Param2).
	FamilyUniform Family = "uniform"
)

var validFamilies = map[Family]bool{
	FamilyNormal:      true,
	FamilyExponential: true,
	FamilyUniform:     true,
}

// ParseFamily resolves a family name case-insensitively.
func ParseFamily(name string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(name)))
	if !validFamilies[f] {
		return "", fmt.Errorf("unknown distribution family %q; valid: normal, exponential, uniform", name)
	}
	return f, nil
}

// DistSpec parameterizes a service-time or variable distribution.
type DistSpec struct {
	Family Family  `yaml:"family" json:"family"`
	Param1 float64 `yaml:"param1" json:"param1"`
	Param2 float64 `yaml:"param2" json:"param2"`
}

// Validate checks the parameters against the family's domain.
func (d DistSpec) Validate() error {
	f, err := ParseFamily(string(d.Family))
	if err != nil {
		return err
	}
	if math.IsNaN(d.Param1) || math.IsInf(d.Param1, 0) || math.IsNaN(d.Param2) || math.IsInf(d.Param2, 0) {
		return fmt.Errorf("%s parameters must be finite, got (%v, %v)", f, d.Param1, d.Param2)
	}
	switch f {
	case FamilyNormal:
		if d.Param2 < 0 {
			return fmt.Errorf("normal variance must be non-negative, got %v", d.Param2)
		}
	case FamilyExponential:
		if d.Param1 <= 0 {
			return fmt.Errorf("exponential mean must be positive, got %v", d.Param1)
		}
	case FamilyUniform:
		if d.Param1 >= d.Param2 {
			return fmt.Errorf("uniform min must be below max, got min=%v max=%v", d.Param1, d.Param2)
		}
	}
	return nil
}

// Sampler draws one real-valued variate from a prepared distribution.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// NormalSampler draws from N(mean, stdDev²).
type NormalSampler struct {
	mean, stdDev float64
}

func (s *NormalSampler) Sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*s.stdDev + s.mean
}

// ExponentialSampler draws exponential variates with the given mean.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

// UniformSampler draws from [min, max).
type UniformSampler struct {
	min, width float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.min + s.width*rng.Float64()
}

// NonNegativeSampler floors the wrapped sampler's draws at zero so the
// result can be used as a duration.
type NonNegativeSampler struct {
	inner Sampler
}

func (s *NonNegativeSampler) Sample(rng *rand.Rand) float64 {
	return math.Max(0, s.inner.Sample(rng))
}

// NewSampler validates spec and resolves it into a Sampler.
// Draws are returned unclamped; see NewServiceSampler for durations.
func NewSampler(spec DistSpec) (Sampler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	f, _ := ParseFamily(string(spec.Family))
	switch f {
	case FamilyNormal:
		return &NormalSampler{mean: spec.Param1, stdDev: math.Sqrt(spec.Param2)}, nil
	case FamilyExponential:
		return &ExponentialSampler{mean: spec.Param1}, nil
	default:
		return &UniformSampler{min: spec.Param1, width: spec.Param2 - spec.Param1}, nil
	}
}

// NewServiceSampler is NewSampler with draws clamped to >= 0.
func NewServiceSampler(spec DistSpec) (Sampler, error) {
	s, err := NewSampler(spec)
	if err != nil {
		return nil, err
	}
	return &NonNegativeSampler{inner: s}, nil
}
