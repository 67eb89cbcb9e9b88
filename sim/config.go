package sim

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stagesim/stagesim/sim/workload"
)

// StageSpec describes one single-server service stage. Param semantics
// depend on the family: mean/variance for normal, mean for exponential,
// min/max for uniform.
type StageSpec struct {
	Name              string `yaml:"name" json:"name"`
	workload.DistSpec `yaml:",inline"`
}

// NewStageSpec is a convenience constructor used by the CLI and tests.
func NewStageSpec(name string, family workload.Family, p1, p2 float64) StageSpec {
	return StageSpec{Name: name, DistSpec: workload.DistSpec{Family: family, Param1: p1, Param2: p2}}
}

// SimulationConfig is the complete, immutable input of one run.
type SimulationConfig struct {
	Hours              int         `yaml:"hours" json:"hours"`
	ArrivalRatePerHour float64     `yaml:"arrival_rate_per_hour" json:"arrival_rate_per_hour"`
	ToleranceMinutes   float64     `yaml:"tolerance_minutes" json:"tolerance_minutes"`
	AbandonProbability float64     `yaml:"abandon_probability" json:"abandon_probability"`
	Stages             []StageSpec `yaml:"stages" json:"stages"`
	// Seed makes the run reproducible. nil = fresh entropy per run.
	Seed *int64 `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// Horizon returns the simulated length of the run in minutes.
func (c *SimulationConfig) Horizon() float64 {
	return float64(c.Hours) * workload.MinutesPerHour
}

// Validate checks every field and reports all violations at once.
// Returned errors satisfy errors.Is(err, ErrInvalidConfiguration), or
// errors.Is(err, ErrEmptyInput) for a nil config.
func (c *SimulationConfig) Validate() error {
	if c == nil {
		return ErrEmptyInput
	}
	var errs []error
	if c.Hours <= 0 {
		errs = append(errs, invalid("hours", "must be positive, got %d", c.Hours))
	}
	if !isFinite(c.ArrivalRatePerHour) || c.ArrivalRatePerHour <= 0 {
		errs = append(errs, invalid("arrival_rate_per_hour", "must be a positive finite number, got %v", c.ArrivalRatePerHour))
	}
	if !isFinite(c.ToleranceMinutes) || c.ToleranceMinutes < 0 {
		errs = append(errs, invalid("tolerance_minutes", "must be a non-negative finite number, got %v", c.ToleranceMinutes))
	}
	if math.IsNaN(c.AbandonProbability) || c.AbandonProbability < 0 || c.AbandonProbability > 1 {
		errs = append(errs, invalid("abandon_probability", "must be in [0, 1], got %v", c.AbandonProbability))
	}
	if len(c.Stages) == 0 {
		errs = append(errs, invalid("stages", "at least one stage is required"))
	}
	for i, s := range c.Stages {
		if err := s.DistSpec.Validate(); err != nil {
			errs = append(errs, invalid(fmt.Sprintf("stages[%d] (%s)", i, s.Name), "%v", err))
		}
	}
	return errors.Join(errs...)
}

// LoadSimulationConfig reads a YAML (or JSON) run configuration.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading simulation config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("simulation config %s: %w", path, ErrEmptyInput)
	}
	var cfg SimulationConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing simulation config: %w", err)
	}
	return &cfg, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
