package tree

import (
	"sort"

	"github.com/YuminosukeSato/gbtree/pkg/errors"
)

// SplitCandidate is the best split found at one node.
type SplitCandidate struct {
	Feature   string
	Threshold float64
	Gain      float64

	feature int
}

// findBestSplit scans every feature in column order and every distinct value
// in ascending order. For each value the g/h sums of the rows holding exactly
// that value are added to the running left sums, so the candidate sends
// value <= threshold left. A later candidate only wins with a strictly
// greater gain.
func findBestSplit(d *dataset, names []string, g, h, lambda float64) (SplitCandidate, error) {
	var best SplitCandidate
	found := false

	order := make([]int, d.len())
	for f, values := range d.values {
		copy(order, d.rows)
		sort.SliceStable(order, func(a, b int) bool {
			return values[order[a]] < values[order[b]]
		})

		var gl, hl float64
		for i := 0; i < len(order); {
			v := values[order[i]]
			var gs, hs float64
			for ; i < len(order) && values[order[i]] == v; i++ {
				gs += d.g[order[i]]
				hs += d.h[order[i]]
			}
			gl += gs
			hl += hs

			gain, ok := splitGain(gl, hl, g, h, lambda)
			if !ok {
				continue
			}
			if !found || gain > best.Gain {
				best = SplitCandidate{Feature: names[f], Threshold: v, Gain: gain, feature: f}
				found = true
			}
		}
	}

	if !found {
		if len(names) == 0 {
			return SplitCandidate{}, errors.NewConfigurationError("findBestSplit", "the frame has no feature columns")
		}
		return SplitCandidate{}, errors.NewConfigurationError("findBestSplit",
			"every split candidate has a hessian sum equal to -lambda")
	}
	return best, nil
}
