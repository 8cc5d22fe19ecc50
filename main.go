package main

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"fenceline/adapters/excel"
	"fenceline/adapters/postgres"
	"fenceline/app"
	"fenceline/internal/api"
	"fenceline/internal/config"
	"fenceline/internal/errors"
	"fenceline/internal/migration"
	"fenceline/ports"
	"fenceline/ui"
)

func main() {
	// Load .env file if present (ignore errors for production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var repo ports.RunRepository
	if appConfig.Database.URL != "" {
		db, err := initDatabase(appConfig)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := migration.NewRunner().Run(ctx, db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		repo = postgres.NewRunRepository(db)
	} else {
		log.Println("DATABASE_URL not set, running without persistence")
	}

	service := app.NewAnalysisService(repo, appConfig.Analysis.Workers)
	handler := api.NewHandler(service, repo)

	// Analyze the configured data file on startup so the report UI has a run
	// to show before any API traffic arrives.
	if appConfig.Data.File != "" {
		if err := analyzeDataFile(service, appConfig.Data.File); err != nil {
			log.Printf("Startup analysis of %s failed: %v", appConfig.Data.File, err)
		}
	}

	// The report UI only makes sense with stored runs to render.
	if repo != nil {
		reportApp := ui.NewApp(repo)
		go func() {
			log.Printf("Report UI listening on :%s", appConfig.Server.UIPort)
			if err := reportApp.Start(appConfig.Server.UIPort); err != nil {
				log.Fatalf("Report UI failed: %v", err)
			}
		}()
	}

	log.Printf("API listening on :%s", appConfig.Server.APIPort)
	if err := handler.Router().Run(":" + appConfig.Server.APIPort); err != nil {
		log.Fatalf("API server failed: %v", err)
	}
}

// analyzeDataFile runs one analysis over a local CSV/XLSX file
func analyzeDataFile(service *app.AnalysisService, file string) error {
	var reader ports.SeriesReader = excel.NewDataReader(file)
	matrix, err := reader.ReadMatrix()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	analysis, err := service.RunAnalysis(ctx, *matrix)
	if err != nil {
		return err
	}
	log.Printf("Startup analysis %s: %d series, %d outliers",
		analysis.RunID, analysis.SeriesCount, analysis.TotalOutliers())
	return nil
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
