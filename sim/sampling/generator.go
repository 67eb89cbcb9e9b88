// Package sampling fills seeded buffers with random variates. Every
// generator owns its PCG stream, so equal seeds reproduce equal buffers.
package sampling

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stagesim/stagesim/sim/workload"
)

// Source derives a PCG stream from a single seed.
func Source(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Variate is the common surface of distuv's distributions.
type Variate interface {
	Rand() float64
}

// NewVariate prepares spec for drawing from src. Normal takes mean and
// variance, exponential its mean, uniform min and max.
func NewVariate(spec workload.DistSpec, src rand.Source) (Variate, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	family, _ := workload.ParseFamily(string(spec.Family))
	switch family {
	case workload.FamilyNormal:
		return distuv.Normal{Mu: spec.Param1, Sigma: math.Sqrt(spec.Param2), Src: src}, nil
	case workload.FamilyExponential:
		return distuv.Exponential{Rate: 1 / spec.Param1, Src: src}, nil
	default:
		return distuv.Uniform{Min: spec.Param1, Max: spec.Param2, Src: src}, nil
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func fill(n int, d Variate) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out, nil
}

// Uniform returns n variates from U(0, 1).
func Uniform(n int, seed uint64) ([]float64, error) {
	return fill(n, distuv.Uniform{Min: 0, Max: 1, Src: Source(seed)})
}

// Normal returns n variates from N(mean, std²).
func Normal(n int, mean, std float64, seed uint64) ([]float64, error) {
	if !finite(mean) || !finite(std) || std < 0 {
		return nil, fmt.Errorf("normal parameters must be finite with non-negative deviation, got mean=%v std=%v", mean, std)
	}
	return fill(n, distuv.Normal{Mu: mean, Sigma: std, Src: Source(seed)})
}

// Exponential returns n variates with mean beta.
func Exponential(n int, beta float64, seed uint64) ([]float64, error) {
	if !finite(beta) || beta <= 0 {
		return nil, fmt.Errorf("exponential mean must be positive, got %v", beta)
	}
	return fill(n, distuv.Exponential{Rate: 1 / beta, Src: Source(seed)})
}

// Poisson returns n counts with mean lambda.
func Poisson(n int, lambda float64, seed uint64) ([]float64, error) {
	if !finite(lambda) || lambda <= 0 {
		return nil, fmt.Errorf("poisson mean must be positive, got %v", lambda)
	}
	return fill(n, distuv.Poisson{Lambda: lambda, Src: Source(seed)})
}

// Binomial returns n success counts out of trials with probability p.
func Binomial(n, trials int, p float64, seed uint64) ([]float64, error) {
	if trials < 0 {
		return nil, fmt.Errorf("trial count must be non-negative, got %d", trials)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("success probability must be in [0, 1], got %v", p)
	}
	return fill(n, distuv.Binomial{N: float64(trials), P: p, Src: Source(seed)})
}

// SampleMeans draws trials batches of size samples from spec and returns
// the mean of each batch.
func SampleMeans(spec workload.DistSpec, samples, trials int, seed uint64) ([]float64, error) {
	if samples <= 0 || trials <= 0 {
		return nil, fmt.Errorf("samples and trials must be positive, got %d and %d", samples, trials)
	}
	d, err := NewVariate(spec, Source(seed))
	if err != nil {
		return nil, err
	}
	means := make([]float64, trials)
	for i := range means {
		sum := 0.0
		for range samples {
			sum += d.Rand()
		}
		means[i] = sum / float64(samples)
	}
	return means, nil
}
