package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fenceline/domain/core"
	"fenceline/internal/report"
	"fenceline/ports"
)

// App serves HTML report pages for stored analysis runs
type App struct {
	router *chi.Mux
	repo   ports.RunRepository
}

// NewApp creates the report UI application
func NewApp(repo ports.RunRepository) *App {
	app := &App{
		router: chi.NewRouter(),
		repo:   repo,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/runs/{id}", a.handleRunReport)
}

// handleIndex lists stored runs as a minimal landing page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	analyses, err := a.repo.ListAnalyses(r.Context(), 50, 0)
	if err != nil {
		http.Error(w, "failed to list runs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html><html><head><title>Outlier runs</title></head><body><h1>Outlier runs</h1><ul>")
	for _, analysis := range analyses {
		fmt.Fprintf(w, `<li><a href="/runs/%s">%s</a> — %s (%d series)</li>`,
			analysis.RunID, analysis.RunID, analysis.Source, analysis.SeriesCount)
	}
	fmt.Fprint(w, "</ul></body></html>")
}

// handleRunReport renders one stored analysis as an HTML report
func (a *App) handleRunReport(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "id"))

	analysis, err := a.repo.GetAnalysis(r.Context(), id)
	if err != nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.HTML(analysis))
}

// Start runs the UI server on the given port
func (a *App) Start(port string) error {
	return http.ListenAndServe(":"+port, a.router)
}
