package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fenceline/app"
	"fenceline/domain/outlier"
	"fenceline/models"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := app.NewAnalysisService(nil, 2)
	return NewHandler(service, nil).Router()
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRunTukeyKnownDataset(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/tukey", TukeyRequest{
		Values: []float64{2, 3, 3, 4, 5, 6, 7, 8, 9, 10, 50},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result outlier.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.True(t, result.HasFences())
	assert.Equal(t, -6.0, *result.LowerFence)
	assert.Equal(t, 18.0, *result.UpperFence)
	assert.Equal(t, []float64{50}, result.Outliers)
}

func TestRunTukeyEmptyValues(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/tukey", TukeyRequest{Values: []float64{}})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestRunTukeySingleValue(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/tukey", TukeyRequest{Values: []float64{5}})
	require.Equal(t, http.StatusOK, w.Code)

	var result outlier.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []float64{5}, result.NonOutliers)
	assert.Nil(t, result.LowerFence)
	assert.Nil(t, result.UpperFence)
}

func TestRunTukeyInvalidBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tukey", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunAnalysisEndpoint(t *testing.T) {
	router := newTestRouter()

	body := map[string]interface{}{
		"source": "unit-test",
		"series": []map[string]interface{}{
			{"name": "a", "values": []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 100}},
			{"name": "b", "values": []float64{7}},
		},
	}
	w := postJSON(t, router, "/api/v1/analyses", body)
	require.Equal(t, http.StatusOK, w.Code)

	var analysis models.Analysis
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &analysis))
	assert.Equal(t, "unit-test", analysis.Source)
	require.Len(t, analysis.Reports, 2)
	require.True(t, analysis.Reports[0].HasResult())
	assert.Equal(t, []float64{100}, analysis.Reports[0].Result.Outliers)
}

func TestRunAnalysisNoSeries(t *testing.T) {
	router := newTestRouter()

	w := postJSON(t, router, "/api/v1/analyses", map[string]interface{}{"source": "empty"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoredEndpointsWithoutRepository(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/some-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotImplemented, w.Code)
}
