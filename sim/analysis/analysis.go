// Package analysis runs the full descriptive pipeline over a raw sample:
// summary, grouped views and the best-fitting distribution with its
// overlay curves, producing one serializable document.
package analysis

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/stagesim/stagesim/sim/fit"
	"github.com/stagesim/stagesim/sim/stats"
)

// StemScale is the scale applied to the stem-and-leaf display.
const StemScale = 100

// Options overrides the automatic grouping. Zero values keep the defaults.
type Options struct {
	Bins int      // forced class count; Sturges when <= 0
	Min  *float64 // forced lower bound of the grouped range
	Max  *float64 // forced upper bound of the grouped range
}

// Report is the complete analysis of one sample. BestFit and Curves are
// nil when no family could be fitted.
type Report struct {
	Summary        *stats.Summary        `json:"summary"`
	Histogram      *stats.Histogram      `json:"histogram"`
	FrequencyTable *stats.FrequencyTable `json:"freq_table"`
	BoxPlot        *stats.BoxPlot        `json:"boxplot"`
	StemLeaf       []stats.Stem          `json:"stem_leaf"`
	BestFit        *fit.Candidate        `json:"best_fit,omitempty"`
	Candidates     []fit.Candidate       `json:"candidates,omitempty"`
	Curves         *fit.Curves           `json:"curves,omitempty"`
}

// Analyze sorts a copy of samples and runs every stage of the pipeline.
func Analyze(samples []float64, opts Options) (*Report, error) {
	if len(samples) == 0 {
		return nil, stats.ErrEmptySample
	}
	if err := stats.CheckFinite(samples); err != nil {
		return nil, err
	}
	sorted := stats.Sort(samples)
	n := len(sorted)

	k := opts.Bins
	if k <= 0 {
		k = stats.SturgesBins(n)
	}

	summary, err := stats.Summarize(sorted, k)
	if err != nil {
		return nil, err
	}
	if opts.Min != nil {
		summary.Min = *opts.Min
	}
	if opts.Max != nil {
		summary.Max = *opts.Max
	}
	if err := stats.CheckFinite([]float64{summary.Min, summary.Max}); err != nil {
		return nil, fmt.Errorf("grouped range: %w", err)
	}
	if summary.Max < summary.Min {
		return nil, fmt.Errorf("grouped range is inverted: min=%v max=%v", summary.Min, summary.Max)
	}
	summary.Range = summary.Max - summary.Min
	summary.Amplitude = summary.Range / float64(k)

	hist, err := stats.NewHistogram(sorted, k, summary.Min, summary.Max)
	if err != nil {
		return nil, err
	}
	box, err := stats.NewBoxPlot(sorted)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Summary:        summary,
		Histogram:      hist,
		FrequencyTable: stats.NewFrequencyTable(hist, n),
		BoxPlot:        box,
		StemLeaf:       stats.StemLeaf(sorted, StemScale),
	}

	res, err := fit.BestFit(sorted)
	switch {
	case errors.Is(err, fit.ErrNoCandidate):
		logrus.Warnf("analysis: %v", err)
		return report, nil
	case err != nil:
		return nil, err
	}
	report.BestFit = &res.Best
	report.Candidates = res.Candidates
	report.Curves = fit.NewCurves(res.Best, hist.Edges, summary.Min, summary.Max, n, hist.Amplitude)
	logrus.Debugf("analysis: n=%d k=%d best fit %s (AIC %.3f)", n, k, res.Best.Name, res.Best.AIC)
	return report, nil
}
