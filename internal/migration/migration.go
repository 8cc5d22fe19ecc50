package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fenceline/internal/errors"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRunsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create outlier_runs table")
	}

	if err := r.createResultsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create outlier_results table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createRunsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS outlier_runs (
		id VARCHAR(36) PRIMARY KEY,
		source TEXT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		series_count INTEGER NOT NULL DEFAULT 0
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createResultsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS outlier_results (
		run_id VARCHAR(36) NOT NULL REFERENCES outlier_runs(id) ON DELETE CASCADE,
		series_key VARCHAR(36) NOT NULL,
		series_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		dropped_nan INTEGER NOT NULL DEFAULT 0,
		payload JSONB NOT NULL,
		PRIMARY KEY (run_id, series_key)
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_outlier_runs_started_at ON outlier_runs(started_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_outlier_results_run_id ON outlier_results(run_id)`,
	}
	for _, query := range queries {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}
