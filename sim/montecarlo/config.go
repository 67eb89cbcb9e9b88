// Package montecarlo estimates the distribution of a weighted sum of
// independent random variables by repeated sampling, optionally counting
// how often the sum crosses a threshold.
package montecarlo

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stagesim/stagesim/sim"
	"github.com/stagesim/stagesim/sim/workload"
)

// Mode selects what Execute reports beyond the moments of the sum.
type Mode string

const (
	// ModeAggregation only summarizes the sum.
	ModeAggregation Mode = "aggregation"
	// ModeProbability also counts iterations satisfying the threshold test.
	ModeProbability Mode = "probability"
)

// Operator compares an iteration's sum against the threshold.
type Operator string

const (
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
)

func (op Operator) holds(x, threshold float64) (bool, error) {
	switch op {
	case OpLess:
		return x < threshold, nil
	case OpLessEqual:
		return x <= threshold, nil
	case OpGreater:
		return x > threshold, nil
	case OpGreaterEqual:
		return x >= threshold, nil
	}
	return false, fmt.Errorf("unknown operator %q; valid: <, <=, >, >=", string(op))
}

// Variable is one term of the sum: multiplier * X with X ~ Distribution.
type Variable struct {
	Name         string            `yaml:"name" json:"name"`
	Distribution workload.DistSpec `yaml:"distribution" json:"distribution"`
	// Multiplier defaults to 1; use -1 to subtract the term.
	Multiplier *float64 `yaml:"multiplier,omitempty" json:"multiplier,omitempty"`
}

func (v Variable) weight() float64 {
	if v.Multiplier == nil {
		return 1
	}
	return *v.Multiplier
}

// ProbabilityParams configures ModeProbability.
type ProbabilityParams struct {
	Threshold      float64  `yaml:"threshold" json:"threshold"`
	Operator       Operator `yaml:"operator" json:"operator"`
	CostPerEvent   float64  `yaml:"cost_per_event" json:"cost_per_event"`
	PopulationSize float64  `yaml:"population_size" json:"population_size"`
}

// Analysis selects the reporting mode.
type Analysis struct {
	Mode        Mode               `yaml:"mode" json:"mode"`
	Probability *ProbabilityParams `yaml:"probability,omitempty" json:"probability,omitempty"`
}

// Config is the complete input of one Monte-Carlo experiment.
type Config struct {
	Iterations int        `yaml:"iterations" json:"iterations"`
	Variables  []Variable `yaml:"variables" json:"variables"`
	Analysis   Analysis   `yaml:"analysis" json:"analysis"`
	Seed       *uint64    `yaml:"seed,omitempty" json:"seed,omitempty"`
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	if c == nil {
		return sim.ErrEmptyInput
	}
	var errs []error
	if c.Iterations <= 0 {
		errs = append(errs, &sim.ValidationError{Field: "iterations", Reason: fmt.Sprintf("must be positive, got %d", c.Iterations)})
	}
	if len(c.Variables) == 0 {
		errs = append(errs, &sim.ValidationError{Field: "variables", Reason: "at least one variable is required"})
	}
	for i, v := range c.Variables {
		if err := v.Distribution.Validate(); err != nil {
			errs = append(errs, &sim.ValidationError{Field: fmt.Sprintf("variables[%d] (%s)", i, v.Name), Reason: err.Error()})
		}
		if w := v.weight(); !finite(w) {
			errs = append(errs, &sim.ValidationError{Field: fmt.Sprintf("variables[%d] (%s).multiplier", i, v.Name), Reason: fmt.Sprintf("must be finite, got %v", w)})
		}
	}
	switch c.Analysis.Mode {
	case ModeAggregation, "":
	case ModeProbability:
		p := c.Analysis.Probability
		if p == nil {
			errs = append(errs, &sim.ValidationError{Field: "analysis.probability", Reason: "required in probability mode"})
		} else {
			if _, err := p.Operator.holds(0, 0); err != nil {
				errs = append(errs, &sim.ValidationError{Field: "analysis.probability.operator", Reason: err.Error()})
			}
			for _, f := range []struct {
				name  string
				value float64
			}{
				{"threshold", p.Threshold},
				{"cost_per_event", p.CostPerEvent},
				{"population_size", p.PopulationSize},
			} {
				if !finite(f.value) {
					errs = append(errs, &sim.ValidationError{Field: "analysis.probability." + f.name, Reason: fmt.Sprintf("must be finite, got %v", f.value)})
				}
			}
		}
	default:
		errs = append(errs, &sim.ValidationError{Field: "analysis.mode", Reason: fmt.Sprintf("unknown mode %q; valid: aggregation, probability", c.Analysis.Mode)})
	}
	return errors.Join(errs...)
}

// Load reads a YAML (or JSON) experiment file, rejecting unknown keys.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading monte-carlo config: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("monte-carlo config %s: %w", path, sim.ErrEmptyInput)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing monte-carlo config: %w", err)
	}
	return &cfg, nil
}
