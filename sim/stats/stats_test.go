package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagesim/stagesim/sim/internal/testutil"
)

func TestSturgesBins(t *testing.T) {
	tests := []struct {
		n, want int
	}{
		{0, 1},
		{1, 1},
		{10, 5},
		{100, 9},
		{1000, 11},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SturgesBins(tt.n), "n=%d", tt.n)
		assert.Equal(t, 1, SturgesBins(tt.n)%2, "class count must be odd")
	}
}

func TestSummarize_KnownSample(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4, 5}, 5)
	require.NoError(t, err)

	assert.Equal(t, 5, s.N)
	assert.InDelta(t, 3, s.Mean, 1e-12)
	assert.InDelta(t, 2, s.VariancePop, 1e-12)
	assert.InDelta(t, 2.5, s.VarianceSample, 1e-12)
	assert.InDelta(t, math.Sqrt(2), s.StdPop, 1e-12)
	assert.InDelta(t, math.Sqrt(2.5)/3*100, s.CV, 1e-9)
	assert.Equal(t, 3.0, s.Median)
	assert.Empty(t, s.Mode)
	assert.InDelta(t, 0, s.Skewness, 1e-12)
	assert.InDelta(t, -1.3, s.KurtosisExcess, 1e-12)
	assert.Equal(t, 4.0, s.Range)
	assert.InDelta(t, 0.8, s.Amplitude, 1e-12)
}

func TestSummarize_ConstantSample(t *testing.T) {
	s, err := Summarize([]float64{2, 2, 2}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, s.K)
	assert.Equal(t, 0.0, s.Amplitude)
	assert.Equal(t, 0.0, s.Skewness)
	assert.Equal(t, -3.0, s.KurtosisExcess)
	assert.Equal(t, 0.0, s.CV)
	assert.Equal(t, []float64{2}, s.Mode)
}

func TestSummarize_EvenMedianAndMultipleModes(t *testing.T) {
	s, err := Summarize([]float64{1, 1, 2, 2, 3, 9}, 3)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Median)
	assert.Equal(t, []float64{1, 2}, s.Mode)
	assert.Greater(t, s.Skewness, 0.0, "a long right tail skews positive")
}

func TestSummarize_ZeroMeanHasZeroCV(t *testing.T) {
	s, err := Summarize([]float64{-1, 0, 1}, 3)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.CV)
}

func TestSummarize_Empty(t *testing.T) {
	_, err := Summarize(nil, 3)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	out := Sort(in)
	assert.Equal(t, []float64{1, 2, 3}, out)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestNewHistogram_CountsAndDensities(t *testing.T) {
	// GIVEN five values over [0,4] in two classes
	h, err := NewHistogram([]float64{0, 1, 2, 3, 4}, 2, 0, 4)
	require.NoError(t, err)

	// THEN the maximum lands in the last class
	assert.Equal(t, []float64{0, 2, 4}, h.Edges)
	assert.Equal(t, []int{2, 3}, h.Counts)
	assert.Equal(t, []float64{1, 3}, h.Centers)
	testutil.AssertSliceFloat64Equal(t, "densities", []float64{0.2, 0.3}, h.Densities, 1e-12)
	assert.Equal(t, 2.0, h.Amplitude)
}

func TestNewHistogram_DensitiesIntegrateToOne(t *testing.T) {
	data := []float64{0.3, 1.7, 2.2, 2.9, 3.1, 4.8, 5.5, 6.0, 7.4, 9.9}
	h, err := NewHistogram(data, 5, 0, 10)
	require.NoError(t, err)
	area := 0.0
	for _, d := range h.Densities {
		area += d * h.Amplitude
	}
	assert.InDelta(t, 1.0, area, 1e-12)
}

func TestNewHistogram_DegenerateRangeAndClamping(t *testing.T) {
	h, err := NewHistogram([]float64{5, 5}, 1, 5, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, h.Amplitude)
	assert.Equal(t, []int{2}, h.Counts)

	h, err = NewHistogram([]float64{-10, 100}, 2, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, h.Counts)
}

func TestNewHistogram_Errors(t *testing.T) {
	_, err := NewHistogram(nil, 3, 0, 1)
	assert.ErrorIs(t, err, ErrEmptySample)
	_, err = NewHistogram([]float64{1}, 0, 0, 1)
	assert.Error(t, err)
}

func TestNewHistogram_NonFiniteValuesAreErrors(t *testing.T) {
	for name, bad := range map[string]float64{"nan": math.NaN(), "+inf": math.Inf(1), "-inf": math.Inf(-1)} {
		t.Run(name, func(t *testing.T) {
			// GIVEN a sample holding one non-finite value
			data := []float64{1, 2, 3, bad}

			// WHEN it is counted into classes
			h, err := NewHistogram(data, 3, 1, 3)

			// THEN an error comes back instead of an out-of-range class
			assert.ErrorIs(t, err, ErrNonFinite)
			assert.Nil(t, h)
		})
	}

	_, err := NewHistogram([]float64{1, 2}, 3, 0, math.Inf(1))
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestSummarize_NonFiniteValueIsError(t *testing.T) {
	_, err := Summarize([]float64{1, 2, math.NaN()}, 3)
	assert.ErrorIs(t, err, ErrNonFinite)
}

func TestNewFrequencyTable_Cumulative(t *testing.T) {
	data := []float64{1, 2, 2, 3, 5, 8}
	h, err := NewHistogram(data, 3, 1, 8)
	require.NoError(t, err)

	ft := NewFrequencyTable(h, len(data))

	require.Len(t, ft.Classes, 3)
	last := ft.Classes[2]
	assert.Equal(t, len(data), last.CumAbs)
	assert.InDelta(t, 1.0, last.CumRel, 1e-12)
	for i, c := range ft.Classes {
		assert.Equal(t, h.Counts[i], c.AbsFreq)
		assert.InDelta(t, (c.Lower+c.Upper)/2, c.Midpoint, 1e-12)
	}
	assert.Equal(t, ft.Classes[0].Upper, ft.Classes[1].Lower)
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.75, Percentile(sorted, 25))
	assert.Equal(t, 2.5, Percentile(sorted, 50))
	assert.Equal(t, 4.0, Percentile(sorted, 100))
	assert.Equal(t, 7.0, Percentile([]float64{7}, 90))
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestNewBoxPlot_Outliers(t *testing.T) {
	b, err := NewBoxPlot([]float64{1, 2, 3, 4, 100})
	require.NoError(t, err)
	assert.Equal(t, 2.0, b.Q1)
	assert.Equal(t, 3.0, b.Median)
	assert.Equal(t, 4.0, b.Q3)
	assert.Equal(t, 2.0, b.IQR)
	assert.Equal(t, -1.0, b.LowerFence)
	assert.Equal(t, 7.0, b.UpperFence)
	assert.Equal(t, []float64{100}, b.Outliers)

	_, err = NewBoxPlot(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestStemLeaf(t *testing.T) {
	got := StemLeaf([]float64{2.5, 1.25, 1.23, -1.23}, 100)
	assert.Equal(t, []Stem{
		{Stem: -1, Negative: true, Leaves: []int64{23}},
		{Stem: 1, Leaves: []int64{23, 25}},
		{Stem: 2, Leaves: []int64{50}},
	}, got)
}

func TestStemLeaf_SmallNegativesGetMinusZeroStem(t *testing.T) {
	// GIVEN values on both sides of zero with magnitude below one stem
	got := StemLeaf([]float64{0.5, -0.5, 0.07, -1.2}, 100)

	// THEN negatives in (-1, 0) sit on their own "-0" stem before 0
	assert.Equal(t, []Stem{
		{Stem: -1, Negative: true, Leaves: []int64{20}},
		{Stem: 0, Negative: true, Leaves: []int64{50}},
		{Stem: 0, Leaves: []int64{7, 50}},
	}, got)
	assert.Equal(t, "-0", got[1].Label())
	assert.Equal(t, "0", got[2].Label())
	assert.Equal(t, "-1", got[0].Label())
}

func TestStemLeaf_NonPositiveScaleIsOne(t *testing.T) {
	got := StemLeaf([]float64{12.4, 3}, 0)
	assert.Equal(t, []Stem{
		{Stem: 3, Leaves: []int64{0}},
		{Stem: 12, Leaves: []int64{0}},
	}, got)
}
