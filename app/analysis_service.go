package app

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"fenceline/domain/core"
	"fenceline/domain/dataset"
	"fenceline/domain/outlier"
	"fenceline/internal"
	"fenceline/internal/errors"
	"fenceline/internal/profiling"
	"fenceline/models"
	"fenceline/ports"
)

// AnalysisService runs the Tukey fence test across every series of a matrix
// and assembles the run report. Series are analyzed concurrently under a
// weighted semaphore; each series is an independent pure computation.
type AnalysisService struct {
	analyzer *profiling.SummaryAnalyzer
	repo     ports.RunRepository // optional, nil disables persistence
	workers  int64
	logger   *internal.Logger
}

// NewAnalysisService creates an analysis service. repo may be nil when runs
// should not be persisted (CLI usage).
func NewAnalysisService(repo ports.RunRepository, workers int64) *AnalysisService {
	if workers < 1 {
		workers = 1
	}
	return &AnalysisService{
		analyzer: profiling.NewSummaryAnalyzer(),
		repo:     repo,
		workers:  workers,
		logger:   internal.DefaultLogger,
	}
}

// RunAnalysis executes the fence test over every series in the matrix.
// Series whose cells are all NaN produce a report without a result. An empty
// matrix is rejected.
func (s *AnalysisService) RunAnalysis(ctx context.Context, matrix dataset.Matrix) (*models.Analysis, error) {
	if matrix.IsEmpty() {
		return nil, errors.InvalidInput("matrix has no series")
	}

	analysis := &models.Analysis{
		RunID:       core.NewRunID(),
		Source:      matrix.Source,
		StartedAt:   time.Now().UTC(),
		Reports:     make([]models.SeriesReport, len(matrix.Series)),
		SeriesCount: len(matrix.Series),
	}

	s.logger.Info("starting analysis %s: %d series from %s",
		analysis.RunID, len(matrix.Series), matrix.Source)

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	var acquireErr error

	for i, series := range matrix.Series {
		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}
		wg.Add(1)

		go func(idx int, sr dataset.Series) {
			defer wg.Done()
			defer sem.Release(1)

			report, err := s.analyzeSeries(sr)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = errors.Wrapf(err, "series %q failed", sr.Name)
				}
				return
			}
			analysis.Reports[idx] = report
		}(i, series)
	}

	wg.Wait()
	if acquireErr != nil {
		return nil, errors.Wrap(acquireErr, "analysis canceled")
	}
	if firstErr != nil {
		return nil, firstErr
	}

	analysis.FinishedAt = time.Now().UTC()

	if s.repo != nil {
		if err := s.repo.SaveAnalysis(ctx, analysis); err != nil {
			return nil, errors.Wrap(err, "failed to persist analysis")
		}
	}

	s.logger.Info("analysis %s finished: %d outliers across %d series",
		analysis.RunID, analysis.TotalOutliers(), analysis.SeriesCount)

	return analysis, nil
}

// analyzeSeries drops NaN cells, runs the fence test, and profiles the
// surviving values.
func (s *AnalysisService) analyzeSeries(series dataset.Series) (models.SeriesReport, error) {
	report := models.SeriesReport{
		Key:  series.Key,
		Name: series.Name,
	}

	valid, dropped := series.ValidValues()
	report.DroppedNaN = dropped
	if dropped > 0 {
		s.logger.Debug("series %q: dropped %d NaN cells of %d", series.Name, dropped, len(series.Values))
	}

	result, err := outlier.RunInPlace(valid)
	if err != nil {
		return report, err
	}
	report.Result = result
	if result == nil {
		// Nothing numeric survived; the report records the drop count only.
		return report, nil
	}

	summary, err := s.analyzer.Summarize(valid)
	if err != nil {
		return report, errors.Wrap(err, "failed to profile series")
	}
	report.Summary = &summary

	return report, nil
}
