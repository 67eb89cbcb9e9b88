package montecarlo

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stagesim/stagesim/sim/sampling"
)

// PreviewSize caps how many iteration sums are kept in the result.
const PreviewSize = 50

// Result summarizes the sampled sums. The probability fields are set in
// ModeProbability only.
type Result struct {
	Iterations     int       `json:"iterations" yaml:"iterations"`
	Seed           uint64    `json:"seed" yaml:"seed"`
	Mean           float64   `json:"mean" yaml:"mean"`
	StdDev         float64   `json:"std_dev" yaml:"std_dev"`
	Min            float64   `json:"min" yaml:"min"`
	Max            float64   `json:"max" yaml:"max"`
	SamplesPreview []float64 `json:"samples_preview" yaml:"samples_preview"`
	SuccessCount   *int      `json:"success_count,omitempty" yaml:"success_count,omitempty"`
	Probability    *float64  `json:"probability,omitempty" yaml:"probability,omitempty"`
	ExpectedCost   *float64  `json:"expected_cost,omitempty" yaml:"expected_cost,omitempty"`
}

type term struct {
	variate sampling.Variate
	weight  float64
}

// Execute validates cfg, prepares every variable once, and runs the
// iterations on a single seeded stream.
func Execute(cfg *Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := uint64(time.Now().UnixNano())
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	src := sampling.Source(seed)

	terms := make([]term, len(cfg.Variables))
	for i, v := range cfg.Variables {
		d, err := sampling.NewVariate(v.Distribution, src)
		if err != nil {
			return nil, err
		}
		terms[i] = term{variate: d, weight: v.weight()}
	}

	var probability *ProbabilityParams
	if cfg.Analysis.Mode == ModeProbability {
		probability = cfg.Analysis.Probability
	}

	res := &Result{
		Iterations:     cfg.Iterations,
		Seed:           seed,
		Min:            math.Inf(1),
		Max:            math.Inf(-1),
		SamplesPreview: make([]float64, 0, min(PreviewSize, cfg.Iterations)),
	}
	sum, sumSq := 0.0, 0.0
	successes := 0
	for i := 0; i < cfg.Iterations; i++ {
		x := 0.0
		for _, t := range terms {
			x += t.weight * t.variate.Rand()
		}
		sum += x
		sumSq += x * x
		res.Min = math.Min(res.Min, x)
		res.Max = math.Max(res.Max, x)
		if i < PreviewSize {
			res.SamplesPreview = append(res.SamplesPreview, x)
		}
		if probability != nil {
			// operator validity was checked by Validate
			if ok, _ := probability.Operator.holds(x, probability.Threshold); ok {
				successes++
			}
		}
	}

	n := float64(cfg.Iterations)
	res.Mean = sum / n
	res.StdDev = math.Sqrt(math.Max(sumSq/n-res.Mean*res.Mean, 0))
	if probability != nil {
		p := float64(successes) / n
		cost := p * probability.CostPerEvent * probability.PopulationSize
		res.SuccessCount = &successes
		res.Probability = &p
		res.ExpectedCost = &cost
	}
	logrus.Infof("monte-carlo finished: %d iterations, mean %.4f, std %.4f", res.Iterations, res.Mean, res.StdDev)
	return res, nil
}
