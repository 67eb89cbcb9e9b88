// Package stats computes descriptive statistics and grouped views
// (histogram, frequency table, box plot, stem-and-leaf) over a sample.
//
// Functions whose name ends in Sorted, and Summarize, expect data sorted
// in ascending order; callers that hold raw data use Sort first.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrEmptySample is returned when an operation needs at least one value.
var ErrEmptySample = errors.New("sample is empty")

// ErrNonFinite is returned when a sample holds NaN or an infinity.
var ErrNonFinite = errors.New("sample value is not finite")

// CheckFinite returns ErrNonFinite, wrapped with the offending position,
// for the first NaN or infinite value in data.
func CheckFinite(data []float64) error {
	for i, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: index %d is %v", ErrNonFinite, i, x)
		}
	}
	return nil
}

// modeResolution groups values closer than this into one mode candidate.
const modeResolution = 1e-4

// Summary holds the descriptive statistics of a sample.
type Summary struct {
	N              int       `json:"n"`
	Mean           float64   `json:"mean"`
	VariancePop    float64   `json:"variance_pop"`
	VarianceSample float64   `json:"variance_sample"`
	StdPop         float64   `json:"std_pop"`
	StdSample      float64   `json:"std_sample"`
	CV             float64   `json:"cv"` // percent, sample std over mean
	Median         float64   `json:"median"`
	Mode           []float64 `json:"mode"`
	Skewness       float64   `json:"skewness"`
	KurtosisExcess float64   `json:"kurtosis_excess"`
	Min            float64   `json:"min"`
	Max            float64   `json:"max"`
	Range          float64   `json:"range"`
	K              int       `json:"k"`
	Amplitude      float64   `json:"amplitude"`
}

// Sort returns an ascending copy of data.
func Sort(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	sort.Float64s(out)
	return out
}

// Summarize computes the summary of an ascending sample grouped into k
// classes. k < 1 is treated as 1.
func Summarize(sorted []float64, k int) (*Summary, error) {
	n := len(sorted)
	if n == 0 {
		return nil, ErrEmptySample
	}
	if err := CheckFinite(sorted); err != nil {
		return nil, err
	}
	if k < 1 {
		k = 1
	}

	s := &Summary{N: n, K: k, Min: sorted[0], Max: sorted[n-1]}
	s.Range = s.Max - s.Min
	if s.Range != 0 {
		s.Amplitude = s.Range / float64(k)
	}

	s.Mean = floats.Sum(sorted) / float64(n)
	m2 := stat.Moment(2, sorted, nil)
	s.VariancePop = m2
	s.StdPop = math.Sqrt(m2)
	if n > 1 {
		_, s.VarianceSample = stat.MeanVariance(sorted, nil)
		s.StdSample = math.Sqrt(s.VarianceSample)
	}
	if math.Abs(s.Mean) >= 1e-9 {
		s.CV = s.StdSample / s.Mean * 100
	}

	if m2 == 0 {
		s.KurtosisExcess = -3
	} else {
		s.Skewness = stat.Moment(3, sorted, nil) / math.Pow(m2, 1.5)
		s.KurtosisExcess = stat.Moment(4, sorted, nil)/(m2*m2) - 3
	}

	mid := n / 2
	if n%2 == 0 {
		s.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		s.Median = sorted[mid]
	}
	s.Mode = modes(sorted)
	return s, nil
}

// modes returns the start of every run of near-equal values whose length
// equals the longest run. A sample without repetition has no mode.
func modes(sorted []float64) []float64 {
	type run struct {
		value float64
		count int
	}
	var runs []run
	longest := 0
	for _, x := range sorted {
		if len(runs) > 0 && math.Abs(x-runs[len(runs)-1].value) < modeResolution {
			runs[len(runs)-1].count++
		} else {
			runs = append(runs, run{value: x, count: 1})
		}
		longest = max(longest, runs[len(runs)-1].count)
	}
	if longest < 2 {
		return []float64{}
	}
	out := []float64{}
	for _, r := range runs {
		if r.count == longest {
			out = append(out, r.value)
		}
	}
	return out
}
