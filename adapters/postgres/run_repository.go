package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fenceline/domain/core"
	"fenceline/models"
	"fenceline/ports"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// SaveAnalysis inserts a run and its per-series reports
func (r *runRepository) SaveAnalysis(ctx context.Context, analysis *models.Analysis) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runQuery := `INSERT INTO outlier_runs (
		id, source, started_at, finished_at, series_count
	) VALUES ($1, $2, $3, $4, $5)`

	_, err = tx.ExecContext(ctx, runQuery,
		analysis.RunID.String(), analysis.Source, analysis.StartedAt, analysis.FinishedAt, analysis.SeriesCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	resultQuery := `INSERT INTO outlier_results (
		run_id, series_key, series_name, position, dropped_nan, payload
	) VALUES ($1, $2, $3, $4, $5, $6)`

	for i, report := range analysis.Reports {
		payload, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to marshal report for %q: %w", report.Name, err)
		}
		_, err = tx.ExecContext(ctx, resultQuery,
			analysis.RunID.String(), report.Key.String(), report.Name, i, report.DroppedNaN, payload,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result for %q: %w", report.Name, err)
		}
	}

	return tx.Commit()
}

// GetAnalysis retrieves a run and its reports by run ID
func (r *runRepository) GetAnalysis(ctx context.Context, id core.RunID) (*models.Analysis, error) {
	runQuery := `SELECT id, source, started_at, finished_at, series_count
		FROM outlier_runs WHERE id = $1`

	var analysis models.Analysis
	var runID string
	err := r.db.QueryRowContext(ctx, runQuery, id.String()).Scan(
		&runID, &analysis.Source, &analysis.StartedAt, &analysis.FinishedAt, &analysis.SeriesCount,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	analysis.RunID = core.RunID(runID)

	resultQuery := `SELECT payload FROM outlier_results
		WHERE run_id = $1 ORDER BY position`

	rows, err := r.db.QueryContext(ctx, resultQuery, id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		var report models.SeriesReport
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, fmt.Errorf("failed to unmarshal report: %w", err)
		}
		analysis.Reports = append(analysis.Reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}

	return &analysis, nil
}

// ListAnalyses returns run headers without their reports, newest first
func (r *runRepository) ListAnalyses(ctx context.Context, limit, offset int) ([]*models.Analysis, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, source, started_at, finished_at, series_count
		FROM outlier_runs ORDER BY started_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var analyses []*models.Analysis
	for rows.Next() {
		var analysis models.Analysis
		var runID string
		err := rows.Scan(&runID, &analysis.Source, &analysis.StartedAt, &analysis.FinishedAt, &analysis.SeriesCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		analysis.RunID = core.RunID(runID)
		analyses = append(analyses, &analysis)
	}
	return analyses, rows.Err()
}
