// Package fit selects the parametric family that best describes a sample
// and evaluates fitted curves and inverse CDFs on top of gonum's distuv.
package fit

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/stagesim/stagesim/sim/stats"
)

// ErrNoCandidate is returned when no family can describe the sample, for
// example a constant sample with non-positive values.
var ErrNoCandidate = errors.New("no distribution family fits the sample")

// Candidate family names.
const (
	Normal      = "normal"
	Exponential = "exponential"
	LogNormal   = "lognormal"
	Uniform     = "uniform"
)

// PlotPoints is the number of points Curves evaluates the density at.
const PlotPoints = 100

// Candidate is one fitted family with its maximum-likelihood parameters.
type Candidate struct {
	Name          string    `json:"name"`
	AIC           float64   `json:"aic"`
	LogLikelihood float64   `json:"ll"`
	Params        []float64 `json:"params"`

	dist continuous
}

// continuous is the subset of distuv behavior a fitted family exposes.
type continuous interface {
	CDF(x float64) float64
	Prob(x float64) float64
	LogProb(x float64) float64
}

// Result lists every family that could be fitted, best (lowest AIC) first.
type Result struct {
	Best       Candidate   `json:"best"`
	Candidates []Candidate `json:"candidates"`
}

// BestFit fits normal, exponential, lognormal and uniform families to an
// ascending sample and ranks them by AIC = 2k - 2·LL. Exponential is only
// tried for non-negative samples with a positive mean, lognormal only for
// strictly positive samples.
func BestFit(sorted []float64) (*Result, error) {
	n := len(sorted)
	if n == 0 {
		return nil, stats.ErrEmptySample
	}
	lo, hi := sorted[0], sorted[n-1]
	mean := floats.Sum(sorted) / float64(n)
	std := math.Sqrt(stat.Moment(2, sorted, nil))

	var fitted []Candidate
	add := func(name string, params []float64, dist continuous) {
		ll := logLikelihood(sorted, dist)
		if math.IsInf(ll, 0) || math.IsNaN(ll) {
			return
		}
		fitted = append(fitted, Candidate{
			Name:          name,
			AIC:           2*float64(len(params)) - 2*ll,
			LogLikelihood: ll,
			Params:        params,
			dist:          dist,
		})
	}

	if std > 0 {
		add(Normal, []float64{mean, std}, distuv.Normal{Mu: mean, Sigma: std})
	}
	if lo >= 0 && mean > 0 {
		add(Exponential, []float64{mean}, distuv.Exponential{Rate: 1 / mean})
	}
	if lo > 0 {
		logs := make([]float64, n)
		for i, x := range sorted {
			logs[i] = math.Log(x)
		}
		mu := floats.Sum(logs) / float64(n)
		sigma := math.Sqrt(stat.Moment(2, logs, nil))
		if sigma > 0 {
			add(LogNormal, []float64{mu, sigma}, distuv.LogNormal{Mu: mu, Sigma: sigma})
		}
	}
	if hi > lo {
		add(Uniform, []float64{lo, hi}, distuv.Uniform{Min: lo, Max: hi})
	}

	if len(fitted) == 0 {
		return nil, ErrNoCandidate
	}
	sort.SliceStable(fitted, func(i, j int) bool { return fitted[i].AIC < fitted[j].AIC })
	return &Result{Best: fitted[0], Candidates: fitted}, nil
}

func logLikelihood(data []float64, dist continuous) float64 {
	ll := 0.0
	for _, x := range data {
		ll += dist.LogProb(x)
	}
	return ll
}

// Curves overlays a fitted family on a histogram.
type Curves struct {
	ExpectedCounts []float64 `json:"expected_counts"` // n * P(edge[i] <= X < edge[i+1])
	X              []float64 `json:"x"`
	Frequency      []float64 `json:"best_freq"` // pdf scaled to histogram counts
}

// NewCurves computes expected class counts from CDF differences across
// edges, and PlotPoints evenly spaced density values over [lo, hi] scaled
// by n·width so they sit on the histogram's count axis.
func NewCurves(c Candidate, edges []float64, lo, hi float64, n int, width float64) *Curves {
	out := &Curves{
		ExpectedCounts: make([]float64, 0, max(len(edges)-1, 0)),
		X:              make([]float64, PlotPoints),
		Frequency:      make([]float64, PlotPoints),
	}
	if c.dist == nil {
		return out
	}
	for i := 0; i+1 < len(edges); i++ {
		p := math.Max(c.dist.CDF(edges[i+1])-c.dist.CDF(edges[i]), 0)
		out.ExpectedCounts = append(out.ExpectedCounts, p*float64(n))
	}
	for i := range PlotPoints {
		x := lo + float64(i)/float64(PlotPoints-1)*(hi-lo)
		out.X[i] = x
		out.Frequency[i] = c.dist.Prob(x) * float64(n) * width
	}
	return out
}
