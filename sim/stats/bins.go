package stats

import "math"

// SturgesBins returns the Sturges class count round(1 + 3.322·log10 n),
// bumped to the next odd number. An empty sample gets one class.
func SturgesBins(n int) int {
	if n <= 0 {
		return 1
	}
	k := int(math.Round(1 + 3.322*math.Log10(float64(n))))
	if k%2 == 0 {
		k++
	}
	return k
}

// binIndex maps x onto one of k classes of the given width starting at lo.
// Values outside the range land in the first or last class.
func binIndex(x, lo, width float64, k int) int {
	if width <= 0 || k <= 0 {
		return 0
	}
	raw := (x - lo) / width
	if raw < 0 {
		return 0
	}
	idx := int(math.Floor(raw))
	if idx >= k {
		idx = k - 1
	}
	return idx
}

// classWidth is the width of one of k classes over [lo, hi], 1 when the
// range is degenerate.
func classWidth(lo, hi float64, k int) float64 {
	if hi-lo == 0 {
		return 1
	}
	return (hi - lo) / float64(k)
}
