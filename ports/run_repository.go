package ports

import (
	"context"

	"fenceline/domain/core"
	"fenceline/models"
)

// RunRepository persists completed outlier analyses
type RunRepository interface {
	SaveAnalysis(ctx context.Context, analysis *models.Analysis) error
	GetAnalysis(ctx context.Context, id core.RunID) (*models.Analysis, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]*models.Analysis, error)
}
