package dataset

import (
	"math"

	"fenceline/domain/core"
)

// Series is a single named numeric column. Values may contain NaN where the
// source cell was blank or unparseable; consumers decide how to treat those.
type Series struct {
	Key    core.SeriesKey `json:"key"`
	Name   string         `json:"name"`
	Values []float64      `json:"values"`
}

// NewSeries creates a series with a fresh key.
func NewSeries(name string, values []float64) Series {
	return Series{
		Key:    core.SeriesKey(core.NewID()),
		Name:   name,
		Values: values,
	}
}

// ValidValues returns the non-NaN values of the series and the count of
// NaN cells that were dropped.
func (s Series) ValidValues() ([]float64, int) {
	valid := make([]float64, 0, len(s.Values))
	dropped := 0
	for _, v := range s.Values {
		if math.IsNaN(v) {
			dropped++
			continue
		}
		valid = append(valid, v)
	}
	return valid, dropped
}

// MissingRate returns the fraction of NaN cells in the series.
func (s Series) MissingRate() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	_, dropped := s.ValidValues()
	return float64(dropped) / float64(len(s.Values))
}

// Matrix is a collection of series ingested from one source (file, request).
type Matrix struct {
	Source string   `json:"source"`
	Series []Series `json:"series"`
}

// IsEmpty reports whether the matrix carries no series at all.
func (m Matrix) IsEmpty() bool {
	return len(m.Series) == 0
}
