// Package knapsack implements the fit algorithms used to decide which
// staged files go onto which disc.
//
// All four algorithms are greedy: an item that would push the running
// total over capacity is thrown away and the next one is tried. They
// differ only in the order items are considered, which is what gives
// each its trade-off between number of items included and capacity
// utilization. For a typical pool of collect-directory tarballs,
// worst-fit includes the most items.
package knapsack

import (
	"fmt"
	"sort"
)

// Item is a named, sized unit of work, usually a staged file.
type Item struct {
	Path string
	Size int64
}

// FitResult is the outcome of running a fit algorithm against one bin.
// Accepted is in selection order, Rejected holds everything else from
// the input. Accepted and Rejected together are exactly the input set.
type FitResult struct {
	Accepted  []Item
	Rejected  []Item
	BytesUsed int64
	Capacity  int64
}

// Utilization returns the fraction of capacity used, in [0, 1].
func (r FitResult) Utilization() float64 {
	if r.Capacity <= 0 {
		return 0
	}
	return float64(r.BytesUsed) / float64(r.Capacity)
}

// Algorithm selects one of the fit strategies.
type Algorithm string

const (
	FirstFit     Algorithm = "first"
	BestFit      Algorithm = "best"
	WorstFit     Algorithm = "worst"
	AlternateFit Algorithm = "alternate"
)

// Algorithms lists the valid algorithm names in display order.
var Algorithms = []Algorithm{FirstFit, BestFit, WorstFit, AlternateFit}

// ParseAlgorithm maps a user-supplied name to an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case FirstFit, BestFit, WorstFit, AlternateFit:
		return Algorithm(name), nil
	}
	return "", fmt.Errorf("unknown fit algorithm %q", name)
}

// Fit runs the algorithm against a single bin of the given capacity.
// The input slice is never modified. A capacity of zero rejects every
// item, zero-sized ones included.
func (a Algorithm) Fit(items []Item, capacity int64) FitResult {
	switch a {
	case FirstFit:
		return fill(items, capacity)
	case BestFit:
		sorted := sortedBySize(items, true)
		return fill(sorted, capacity)
	case WorstFit:
		sorted := sortedBySize(items, false)
		return fill(sorted, capacity)
	case AlternateFit:
		return alternate(items, capacity)
	}
	// Unreachable for values produced by ParseAlgorithm.
	return fill(items, capacity)
}

// sortedBySize returns a copy of items ordered by size. The sort is
// stable so that equal-sized items keep their input order, which keeps
// results deterministic.
func sortedBySize(items []Item, descending bool) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].Size < sorted[j].Size
	})
	return sorted
}

// fill walks items in the order given, accepting whatever still fits.
// Once remaining capacity hits exactly zero no further items are
// accepted, not even zero-sized ones.
func fill(items []Item, capacity int64) FitResult {
	result := FitResult{Capacity: capacity}
	remaining := capacity
	for _, item := range items {
		if remaining > 0 && item.Size <= remaining {
			result.Accepted = append(result.Accepted, item)
			result.BytesUsed += item.Size
			remaining -= item.Size
		} else {
			result.Rejected = append(result.Rejected, item)
		}
	}
	return result
}

// alternate sorts ascending and then consumes alternately from the
// front (smallest) and back (largest) of the sorted sequence until the
// cursors cross, balancing small and large items.
func alternate(items []Item, capacity int64) FitResult {
	sorted := sortedBySize(items, false)
	result := FitResult{Capacity: capacity}
	remaining := capacity

	take := func(item Item) {
		if remaining > 0 && item.Size <= remaining {
			result.Accepted = append(result.Accepted, item)
			result.BytesUsed += item.Size
			remaining -= item.Size
		} else {
			result.Rejected = append(result.Rejected, item)
		}
	}

	i, j := 0, len(sorted)-1
	for i <= j {
		take(sorted[i])
		i++
		if i <= j {
			take(sorted[j])
			j--
		}
	}
	return result
}
