package outlier

import (
	"math"
	"sort"

	"fenceline/internal/errors"
)

// fenceFactor is the classic Tukey multiplier applied to the IQR.
const fenceFactor = 1.5

// Run performs the Tukey fence test on values and returns the classification.
//
// A nil or empty input yields (nil, nil): there is no result, and that is not
// an error. A single-element input yields a result with the element as a
// non-outlier and no fences. Inputs containing NaN are rejected with an
// INVALID_INPUT error, since NaN has no place in a total order.
//
// Run sorts a copy of the input; the caller's slice is left untouched. Use
// RunInPlace to avoid the copy when the caller owns the slice.
func Run(values []float64) (*Result, error) {
	if len(values) == 0 {
		return nil, nil
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return RunInPlace(cp)
}

// RunInPlace is Run without the defensive copy: the input slice is sorted
// ascending as a side effect and the caller must not rely on its prior order.
func RunInPlace(values []float64) (*Result, error) {
	if len(values) == 0 {
		return nil, nil
	}
	for _, v := range values {
		if math.IsNaN(v) {
			return nil, errors.InvalidInput("dataset contains NaN")
		}
	}

	if len(values) == 1 {
		// A single value has nothing to be compared against.
		return &Result{
			Outliers:    []float64{},
			NonOutliers: []float64{values[0]},
		}, nil
	}

	sort.Float64s(values)

	splitIdx := medianIdx(values)
	lowerHalf := values[:splitIdx]
	var upperHalf []float64
	if len(values)%2 == 0 {
		upperHalf = values[splitIdx:]
	} else {
		// Odd length: the true median belongs to neither half.
		upperHalf = values[splitIdx+1:]
	}

	q1 := median(lowerHalf)
	q3 := median(upperHalf)
	iqr := q3 - q1
	lowerFence := q1 - fenceFactor*iqr
	upperFence := q3 + fenceFactor*iqr

	result := &Result{
		Outliers:    []float64{},
		NonOutliers: []float64{},
		LowerFence:  &lowerFence,
		UpperFence:  &upperFence,
	}
	for _, v := range values {
		if v < lowerFence || v > upperFence {
			result.Outliers = append(result.Outliers, v)
		} else {
			result.NonOutliers = append(result.NonOutliers, v)
		}
	}
	return result, nil
}

// median returns the median of a pre-sorted slice using the lower-median
// convention: the element at floor(len/2), never an average of two middles.
// For [1,2,3,4] that is 3, not 2.5.
func median(sorted []float64) float64 {
	return sorted[medianIdx(sorted)]
}

// medianIdx returns floor(len/2). Integer division gives the floor for both
// even and odd lengths.
func medianIdx(sorted []float64) int {
	return len(sorted) / 2
}
