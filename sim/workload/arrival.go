package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// MinutesPerHour converts hourly rates into per-minute rates.
const MinutesPerHour = 60.0

// ArrivalSampler generates inter-arrival gaps in simulated minutes.
type ArrivalSampler interface {
	// SampleGap returns the next inter-arrival gap. Always >= 0.
	SampleGap(rng *rand.Rand) float64
}

// PoissonSampler generates exponentially-distributed inter-arrival gaps (CV=1).
type PoissonSampler struct {
	ratePerMinute float64
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) float64 {
	return rng.ExpFloat64() / s.ratePerMinute
}

// RatePerMinute returns the arrival intensity the sampler was built with.
func (s *PoissonSampler) RatePerMinute() float64 {
	return s.ratePerMinute
}

// NewPoissonSampler builds a homogeneous Poisson arrival process from an
// hourly arrival rate.
func NewPoissonSampler(ratePerHour float64) (*PoissonSampler, error) {
	if math.IsNaN(ratePerHour) || math.IsInf(ratePerHour, 0) || ratePerHour <= 0 {
		return nil, fmt.Errorf("arrival rate must be a positive finite number, got %v", ratePerHour)
	}
	return &PoissonSampler{ratePerMinute: ratePerHour / MinutesPerHour}, nil
}

// ArrivalStream walks a simulated clock forward by sampled gaps until a
// horizon is reached. A stream is consumed once; build a new one per run.
type ArrivalStream struct {
	sampler ArrivalSampler
	rng     *rand.Rand
	clock   float64
	horizon float64
}

// NewArrivalStream positions the clock at the first arrival instant.
func NewArrivalStream(sampler ArrivalSampler, rng *rand.Rand, horizon float64) *ArrivalStream {
	return &ArrivalStream{
		sampler: sampler,
		rng:     rng,
		clock:   sampler.SampleGap(rng),
		horizon: horizon,
	}
}

// Peek returns the pending arrival instant without consuming it.
func (a *ArrivalStream) Peek() float64 {
	return a.clock
}

// Done reports whether the clock has reached the horizon.
func (a *ArrivalStream) Done() bool {
	return a.clock >= a.horizon
}

// Next consumes the pending arrival and advances the clock by one gap.
func (a *ArrivalStream) Next() float64 {
	t := a.clock
	a.clock += a.sampler.SampleGap(a.rng)
	return t
}
