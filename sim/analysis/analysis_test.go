package analysis

import (
	"encoding/json"
	"math"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagesim/stagesim/sim/fit"
	"github.com/stagesim/stagesim/sim/stats"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func TestAnalyze_DefaultGrouping(t *testing.T) {
	// GIVEN ten unsorted positive values
	samples := []float64{4.2, 1.1, 3.3, 2.8, 5.0, 1.9, 2.2, 3.9, 4.4, 3.1}

	// WHEN analyzed without overrides
	r, err := Analyze(samples, Options{})
	require.NoError(t, err)

	// THEN Sturges picks the class count and every view agrees on it
	assert.Equal(t, 5, r.Summary.K)
	assert.Equal(t, 5, r.Histogram.K)
	assert.Len(t, r.FrequencyTable.Classes, 5)
	assert.Equal(t, 1.1, r.Summary.Min)
	assert.Equal(t, 5.0, r.Summary.Max)
	assert.InDelta(t, 3.9/5, r.Summary.Amplitude, 1e-12)
	assert.Equal(t, len(samples), r.FrequencyTable.Classes[4].CumAbs)

	// AND a fit with overlay curves is present
	require.NotNil(t, r.BestFit)
	require.NotNil(t, r.Curves)
	assert.Len(t, r.Curves.ExpectedCounts, 5)
	assert.Len(t, r.Curves.X, fit.PlotPoints)

	// AND the input was not reordered
	assert.Equal(t, 4.2, samples[0])
}

func TestAnalyze_ForcedGrouping(t *testing.T) {
	lo, hi := 0.0, 10.0
	r, err := Analyze([]float64{1, 2, 3, 7, 8}, Options{Bins: 2, Min: &lo, Max: &hi})
	require.NoError(t, err)

	assert.Equal(t, 2, r.Summary.K)
	assert.Equal(t, 10.0, r.Summary.Range)
	assert.Equal(t, 5.0, r.Summary.Amplitude)
	assert.Equal(t, []float64{0, 5, 10}, r.Histogram.Edges)
	assert.Equal(t, []int{3, 2}, r.Histogram.Counts)
}

func TestAnalyze_InvertedForcedRange(t *testing.T) {
	lo, hi := 5.0, 1.0
	_, err := Analyze([]float64{1, 2, 3}, Options{Min: &lo, Max: &hi})
	assert.Error(t, err)
}

func TestAnalyze_UnfittableSampleStillReports(t *testing.T) {
	r, err := Analyze([]float64{-2, -2, -2}, Options{})
	require.NoError(t, err)
	assert.Nil(t, r.BestFit)
	assert.Nil(t, r.Curves)
	assert.Equal(t, []float64{-2}, r.Summary.Mode)
}

func TestAnalyze_NonFiniteSampleIsError(t *testing.T) {
	for name, bad := range map[string]float64{"nan": math.NaN(), "inf": math.Inf(1)} {
		t.Run(name, func(t *testing.T) {
			// GIVEN a sample with one non-finite value
			// WHEN it is analyzed
			r, err := Analyze([]float64{1, 2, 3, bad}, Options{})

			// THEN the pipeline refuses it without panicking
			assert.ErrorIs(t, err, stats.ErrNonFinite)
			assert.Nil(t, r)
		})
	}

	hi := math.Inf(1)
	_, err := Analyze([]float64{1, 2, 3}, Options{Max: &hi})
	assert.ErrorIs(t, err, stats.ErrNonFinite)
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze(nil, Options{})
	assert.ErrorIs(t, err, stats.ErrEmptySample)
}

func TestReport_MarshalsToJSON(t *testing.T) {
	r, err := Analyze([]float64{1.5, 2.5, 2.5, 3.5, 9}, Options{})
	require.NoError(t, err)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"summary", "histogram", "freq_table", "boxplot", "stem_leaf", "best_fit", "curves"} {
		assert.Contains(t, raw, key)
	}
}
