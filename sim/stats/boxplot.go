package stats

import "math"

// BoxPlot holds the five-number summary with Tukey fences.
type BoxPlot struct {
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	IQR        float64   `json:"iqr"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers"`
}

// NewBoxPlot computes the box plot of an ascending sample. Values beyond
// 1.5 IQR from the quartiles are reported as outliers.
func NewBoxPlot(sorted []float64) (*BoxPlot, error) {
	if len(sorted) == 0 {
		return nil, ErrEmptySample
	}
	b := &BoxPlot{
		Min:      sorted[0],
		Q1:       Percentile(sorted, 25),
		Median:   Percentile(sorted, 50),
		Q3:       Percentile(sorted, 75),
		Max:      sorted[len(sorted)-1],
		Outliers: []float64{},
	}
	b.IQR = b.Q3 - b.Q1
	b.LowerFence = b.Q1 - 1.5*b.IQR
	b.UpperFence = b.Q3 + 1.5*b.IQR
	for _, x := range sorted {
		if x < b.LowerFence || x > b.UpperFence {
			b.Outliers = append(b.Outliers, x)
		}
	}
	return b, nil
}

// Percentile computes the p-th percentile (0-100) of an ascending slice
// using linear interpolation between closest ranks.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}
