package models

import (
	"time"

	"fenceline/domain/core"
	"fenceline/domain/outlier"
	"fenceline/internal/profiling"
)

// SeriesReport is the per-series output of an analysis run: the fence test
// classification plus a descriptive profile of the tested values.
type SeriesReport struct {
	Key        core.SeriesKey     `json:"key"`
	Name       string             `json:"name"`
	DroppedNaN int                `json:"dropped_nan"`
	Result     *outlier.Result    `json:"result,omitempty"`
	Summary    *profiling.Summary `json:"summary,omitempty"`
}

// HasResult reports whether the series produced a classification. A series
// whose cells were all NaN has no result.
func (r SeriesReport) HasResult() bool {
	return r.Result != nil
}

// Analysis is a completed outlier analysis over one data source.
type Analysis struct {
	RunID       core.RunID     `json:"run_id"`
	Source      string         `json:"source"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Reports     []SeriesReport `json:"reports"`
	SeriesCount int            `json:"series_count"`
}

// TotalOutliers counts outliers across all series in the analysis.
func (a *Analysis) TotalOutliers() int {
	total := 0
	for _, r := range a.Reports {
		if r.Result != nil {
			total += len(r.Result.Outliers)
		}
	}
	return total
}
