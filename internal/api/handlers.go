package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fenceline/app"
	"fenceline/domain/core"
	"fenceline/domain/dataset"
	"fenceline/domain/outlier"
	"fenceline/internal/errors"
	"fenceline/ports"
)

// Handler serves the outlier analysis JSON API
type Handler struct {
	service *app.AnalysisService
	repo    ports.RunRepository
}

// NewHandler creates a new API handler. repo may be nil, disabling the
// stored-analysis endpoints.
func NewHandler(service *app.AnalysisService, repo ports.RunRepository) *Handler {
	return &Handler{
		service: service,
		repo:    repo,
	}
}

// Router builds the gin engine with all API routes
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/tukey", h.RunTukey)
		v1.POST("/analyses", h.RunAnalysis)
		v1.GET("/analyses", h.ListAnalyses)
		v1.GET("/analyses/:id", h.GetAnalysis)
	}

	return router
}

// Health reports service liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// TukeyRequest is the body of a one-shot fence test
type TukeyRequest struct {
	Values []float64 `json:"values"`
}

// RunTukey runs the fence test on the posted values. An empty values array is
// a valid input with no result, answered with 204.
func (h *Handler) RunTukey(c *gin.Context) {
	var req TukeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": errors.CodeInvalidInput})
		return
	}

	result, err := outlier.Run(req.Values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}
	if result == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalysisRequest is the body of a full multi-series analysis
type AnalysisRequest struct {
	Source string `json:"source"`
	Series []struct {
		Name   string    `json:"name"`
		Values []float64 `json:"values"`
	} `json:"series"`
}

// RunAnalysis runs a full analysis over the posted series and persists it
// when a repository is configured.
func (h *Handler) RunAnalysis(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "code": errors.CodeInvalidInput})
		return
	}

	matrix := dataset.Matrix{Source: req.Source}
	if matrix.Source == "" {
		matrix.Source = "api"
	}
	for _, s := range req.Series {
		matrix.Series = append(matrix.Series, dataset.NewSeries(s.Name, s.Values))
	}

	analysis, err := h.service.RunAnalysis(c.Request.Context(), matrix)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.GetCode(err) == errors.CodeInvalidInput {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GetAnalysis returns a stored analysis by run ID
func (h *Handler) GetAnalysis(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence not configured"})
		return
	}

	id := core.RunID(c.Param("id"))
	analysis, err := h.repo.GetAnalysis(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "analysis not found", "code": errors.CodeNotFound})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// ListAnalyses returns stored run headers, newest first
func (h *Handler) ListAnalyses(c *gin.Context) {
	if h.repo == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "persistence not configured"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	analyses, err := h.repo.ListAnalyses(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses, "count": len(analyses)})
}
