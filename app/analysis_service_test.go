package app

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fenceline/domain/core"
	"fenceline/domain/dataset"
	"fenceline/internal/errors"
	"fenceline/models"
)

// MockRunRepository is a testify mock of ports.RunRepository
type MockRunRepository struct {
	mock.Mock
}

func (m *MockRunRepository) SaveAnalysis(ctx context.Context, analysis *models.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

func (m *MockRunRepository) GetAnalysis(ctx context.Context, id core.RunID) (*models.Analysis, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Analysis), args.Error(1)
}

func (m *MockRunRepository) ListAnalyses(ctx context.Context, limit, offset int) ([]*models.Analysis, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Analysis), args.Error(1)
}

func TestRunAnalysisClassifiesEverySeries(t *testing.T) {
	repo := new(MockRunRepository)
	repo.On("SaveAnalysis", mock.Anything, mock.AnythingOfType("*models.Analysis")).Return(nil)

	service := NewAnalysisService(repo, 2)
	matrix := dataset.Matrix{
		Source: "test",
		Series: []dataset.Series{
			dataset.NewSeries("revenue", []float64{2, 3, 3, 4, 5, 6, 7, 8, 9, 10, 50}),
			dataset.NewSeries("latency", []float64{1, math.NaN(), 2, 3, math.NaN()}),
		},
	}

	analysis, err := service.RunAnalysis(context.Background(), matrix)
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.False(t, analysis.RunID.String() == "")
	assert.Equal(t, "test", analysis.Source)
	assert.Equal(t, 2, analysis.SeriesCount)
	require.Len(t, analysis.Reports, 2)

	revenue := analysis.Reports[0]
	assert.Equal(t, "revenue", revenue.Name)
	assert.Zero(t, revenue.DroppedNaN)
	require.True(t, revenue.HasResult())
	assert.Equal(t, []float64{50}, revenue.Result.Outliers)
	require.NotNil(t, revenue.Summary)
	assert.Equal(t, 11, revenue.Summary.SampleSize)

	latency := analysis.Reports[1]
	assert.Equal(t, 2, latency.DroppedNaN)
	require.True(t, latency.HasResult())
	assert.Equal(t, 3, latency.Result.Total())

	repo.AssertNumberOfCalls(t, "SaveAnalysis", 1)
}

func TestRunAnalysisEmptyMatrix(t *testing.T) {
	service := NewAnalysisService(nil, 1)

	analysis, err := service.RunAnalysis(context.Background(), dataset.Matrix{Source: "empty"})
	require.Error(t, err)
	assert.Nil(t, analysis)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRunAnalysisAllNaNSeries(t *testing.T) {
	service := NewAnalysisService(nil, 1)
	matrix := dataset.Matrix{
		Source: "sparse",
		Series: []dataset.Series{
			dataset.NewSeries("ghost", []float64{math.NaN(), math.NaN()}),
		},
	}

	analysis, err := service.RunAnalysis(context.Background(), matrix)
	require.NoError(t, err)
	require.Len(t, analysis.Reports, 1)

	report := analysis.Reports[0]
	assert.Equal(t, 2, report.DroppedNaN)
	assert.False(t, report.HasResult(), "a series with no numeric values has no classification")
}

func TestRunAnalysisWithoutRepository(t *testing.T) {
	service := NewAnalysisService(nil, 4)
	matrix := dataset.Matrix{
		Source: "cli",
		Series: []dataset.Series{
			dataset.NewSeries("single", []float64{5}),
		},
	}

	analysis, err := service.RunAnalysis(context.Background(), matrix)
	require.NoError(t, err)

	report := analysis.Reports[0]
	require.True(t, report.HasResult())
	assert.Equal(t, []float64{5}, report.Result.NonOutliers)
	assert.False(t, report.Result.HasFences())
}

func TestRunAnalysisPersistFailure(t *testing.T) {
	repo := new(MockRunRepository)
	repo.On("SaveAnalysis", mock.Anything, mock.Anything).Return(errors.DatabaseError("connection lost"))

	service := NewAnalysisService(repo, 1)
	matrix := dataset.Matrix{
		Source: "test",
		Series: []dataset.Series{
			dataset.NewSeries("values", []float64{1, 2, 3}),
		},
	}

	analysis, err := service.RunAnalysis(context.Background(), matrix)
	require.Error(t, err)
	assert.Nil(t, analysis)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
}
