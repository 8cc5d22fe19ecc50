package outlier

// Result holds the outcome of a Tukey fence test over a single numeric series.
// INVARIANTS:
// - len(Outliers) + len(NonOutliers) equals the length of the tested input
// - Outliers and NonOutliers are each in ascending order
// - NonOutliers lie within [LowerFence, UpperFence] inclusive
// - Outliers lie strictly below LowerFence or strictly above UpperFence
// - Fences are nil when the input had exactly one element (nothing to compare against)
type Result struct {
	Outliers    []float64 `json:"outliers"`
	NonOutliers []float64 `json:"non_outliers"`
	LowerFence  *float64  `json:"lower_fence,omitempty"`
	UpperFence  *float64  `json:"upper_fence,omitempty"`
}

// HasFences reports whether the fences are defined for this result.
func (r *Result) HasFences() bool {
	return r.LowerFence != nil && r.UpperFence != nil
}

// Total returns the number of values the test classified.
func (r *Result) Total() int {
	return len(r.Outliers) + len(r.NonOutliers)
}
