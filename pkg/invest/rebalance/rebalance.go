// Package rebalance redistributes allocation weight when one slice changes.
package rebalance

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/komsit37/invest/pkg/invest/types"
)

// Rebalance sets allocation[index] to newPercentage and moves the
// difference out of the other entries in proportion to their share,
// clamping each at 0. If the total then differs from 100, the residual is
// spread equally over every entry. The input is not modified.
//
// When every other entry is 0 only the residual step applies, so the
// changed entry does not end up at exactly newPercentage.
func Rebalance(allocation []types.AllocationEntry, index int, newPercentage float64) ([]types.AllocationEntry, error) {
	if len(allocation) == 0 {
		return nil, fmt.Errorf("%w: empty allocation", types.ErrInvalidArgument)
	}
	if index < 0 || index >= len(allocation) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", types.ErrInvalidArgument, index, len(allocation))
	}
	if math.IsNaN(newPercentage) || newPercentage < 0 || newPercentage > 100 {
		return nil, fmt.Errorf("%w: percentage must be within [0,100], got %g", types.ErrInvalidArgument, newPercentage)
	}

	out := make([]types.AllocationEntry, len(allocation))
	copy(out, allocation)

	delta := newPercentage - out[index].Percentage
	out[index].Percentage = newPercentage

	var totalOther float64
	for i, a := range out {
		if i != index {
			totalOther += a.Percentage
		}
	}
	if totalOther > 0 {
		for i := range out {
			if i == index {
				continue
			}
			change := out[i].Percentage / totalOther * delta
			out[i].Percentage = math.Max(0, out[i].Percentage-change)
		}
	}

	total := floats.Sum(percentages(out))
	if total != 100 {
		adjust := (100 - total) / float64(len(out))
		for i := range out {
			out[i].Percentage += adjust
		}
	}
	return out, nil
}

// Total sums the percentages of an allocation.
func Total(allocation []types.AllocationEntry) float64 {
	return floats.Sum(percentages(allocation))
}

func percentages(allocation []types.AllocationEntry) []float64 {
	p := make([]float64, len(allocation))
	for i, a := range allocation {
		p[i] = a.Percentage
	}
	return p
}
