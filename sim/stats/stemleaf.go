package stats

import (
	"math"
	"sort"
	"strconv"
)

// Stem is one line of a stem-and-leaf display. Negative marks the stems
// of negative values, so values in (-1, 0) sit on a "-0" stem apart from
// the non-negative values on stem 0.
type Stem struct {
	Stem     int64   `json:"stem"`
	Negative bool    `json:"negative,omitempty"`
	Leaves   []int64 `json:"leaves"`
}

// Label renders the stem with its sign, "-0" included.
func (s Stem) Label() string {
	if s.Negative && s.Stem == 0 {
		return "-0"
	}
	return strconv.FormatInt(s.Stem, 10)
}

type stemKey struct {
	stem     int64
	negative bool
}

// StemLeaf scales every value by scale, rounds it, and splits the result
// into stem (quotient) and leaf (absolute remainder). A non-positive scale
// is treated as 1. Stems are ascending with "-0" before 0; leaves are
// sorted within a stem.
func StemLeaf(data []float64, scale float64) []Stem {
	if scale <= 0 {
		scale = 1
	}
	div := int64(scale)
	if div < 1 {
		div = 1
	}
	groups := make(map[stemKey][]int64)
	for _, x := range data {
		scaled := int64(math.Round(x * scale))
		stem := scaled / div
		leaf := scaled % div
		if leaf < 0 {
			leaf = -leaf
		}
		key := stemKey{stem: stem, negative: scaled < 0}
		groups[key] = append(groups[key], leaf)
	}

	out := make([]Stem, 0, len(groups))
	for key, leaves := range groups {
		sort.Slice(leaves, func(i, j int) bool { return leaves[i] < leaves[j] })
		out = append(out, Stem{Stem: key.stem, Negative: key.negative, Leaves: leaves})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stem != out[j].Stem {
			return out[i].Stem < out[j].Stem
		}
		return out[i].Negative && !out[j].Negative
	})
	return out
}
