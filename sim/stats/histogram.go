package stats

import "fmt"

// Histogram is a k-class count of a sample over [min, max].
type Histogram struct {
	Edges     []float64 `json:"edges"`
	Counts    []int     `json:"counts"`
	Centers   []float64 `json:"centers"`
	Densities []float64 `json:"densities"` // count / (n * width)
	K         int       `json:"k"`
	Amplitude float64   `json:"amplitude"`
}

// NewHistogram counts data into k equal-width classes spanning [lo, hi].
func NewHistogram(data []float64, k int, lo, hi float64) (*Histogram, error) {
	if len(data) == 0 {
		return nil, ErrEmptySample
	}
	if k < 1 {
		return nil, fmt.Errorf("class count must be positive, got %d", k)
	}
	if err := CheckFinite(data); err != nil {
		return nil, err
	}
	if err := CheckFinite([]float64{lo, hi}); err != nil {
		return nil, fmt.Errorf("class range: %w", err)
	}
	width := classWidth(lo, hi, k)
	h := &Histogram{
		Edges:     make([]float64, k+1),
		Counts:    make([]int, k),
		Centers:   make([]float64, k),
		Densities: make([]float64, k),
		K:         k,
		Amplitude: width,
	}
	for _, x := range data {
		h.Counts[binIndex(x, lo, width, k)]++
	}
	n := float64(len(data))
	for i := 0; i <= k; i++ {
		h.Edges[i] = lo + float64(i)*width
		if i < k {
			h.Centers[i] = lo + (float64(i)+0.5)*width
			h.Densities[i] = float64(h.Counts[i]) / (n * width)
		}
	}
	return h, nil
}

// Class is one row of a frequency table.
type Class struct {
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Midpoint float64 `json:"midpoint"`
	AbsFreq  int     `json:"abs_freq"`
	RelFreq  float64 `json:"rel_freq"`
	CumAbs   int     `json:"cum_abs"`
	CumRel   float64 `json:"cum_rel"`
}

// FrequencyTable lists the classes of a histogram with relative and
// cumulative frequencies.
type FrequencyTable struct {
	Classes   []Class `json:"classes"`
	Amplitude float64 `json:"amplitude"`
}

// NewFrequencyTable derives the table from a histogram of n values so the
// two views always agree.
func NewFrequencyTable(h *Histogram, n int) *FrequencyTable {
	t := &FrequencyTable{Classes: make([]Class, h.K), Amplitude: h.Amplitude}
	cumAbs, cumRel := 0, 0.0
	for i := range h.K {
		rel := float64(h.Counts[i]) / float64(n)
		cumAbs += h.Counts[i]
		cumRel += rel
		lower := h.Edges[i]
		t.Classes[i] = Class{
			Lower:    lower,
			Upper:    lower + h.Amplitude,
			Midpoint: lower + h.Amplitude/2,
			AbsFreq:  h.Counts[i],
			RelFreq:  rel,
			CumAbs:   cumAbs,
			CumRel:   cumRel,
		}
	}
	return t
}
