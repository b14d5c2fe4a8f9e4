package knapsack

import "fmt"

// Bin is one disc worth of items.
type Bin struct {
	Items    []Item
	Bytes    int64
	Capacity int64
	// Utilization is a percentage in [0, 100].
	Utilization float64
}

// Partition splits items across as many capacity-bounded bins as
// needed. The chosen algorithm fills the first bin from the full item
// pool, the second bin from the first bin's rejects, and so on until
// the pool is empty.
//
// Partition is stateless and deterministic, and never modifies the
// input, so a caller that dislikes the result can simply call again
// with a different algorithm. If a fill round accepts nothing while
// items remain, every remaining item is individually larger than the
// capacity and an error is returned instead of looping forever.
func Partition(items []Item, capacity int64, algorithm Algorithm) ([]Bin, error) {
	var bins []Bin
	pool := items
	for len(pool) > 0 {
		result := algorithm.Fit(pool, capacity)
		if len(result.Accepted) == 0 {
			return nil, fmt.Errorf("cannot make progress after %d bin(s): %d remaining item(s) are each larger than the capacity of %d bytes",
				len(bins), len(pool), capacity)
		}
		bins = append(bins, Bin{
			Items:       result.Accepted,
			Bytes:       result.BytesUsed,
			Capacity:    capacity,
			Utilization: result.Utilization() * 100.0,
		})
		pool = result.Rejected
	}
	return bins, nil
}
