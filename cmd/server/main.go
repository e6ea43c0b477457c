package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/trendfolio/trendfolio-backend/internal/adapter/httpapi"
	"github.com/trendfolio/trendfolio-backend/internal/adapter/repository/postgres"
	"github.com/trendfolio/trendfolio-backend/internal/config"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/report"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/seeder"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/series"
	"github.com/trendfolio/trendfolio-backend/internal/usecase/tracker"
)

func main() {
	// 1. Load configuration and set up logging
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := newLogger(cfg.LogLevel)

	// 2. Setup database
	db, err := postgres.NewDB(cfg.DBConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// 3. Initialize repositories (Postgres)
	assetRepo := postgres.NewAssetRepository(db)
	holdingRepo := postgres.NewHoldingRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)

	// 4. Initialize services (use cases)
	generator := series.NewGenerator(cfg.SeriesSeed)
	reportService := report.NewReportService(holdingRepo, predictionRepo, generator)
	trackerService := tracker.NewTrackerService(assetRepo, holdingRepo, predictionRepo)

	// Initialize the catalog seeder and run it
	catalogSeeder := seeder.NewCatalogSeeder(assetRepo)
	ctx := context.Background()
	if err := catalogSeeder.Seed(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed asset catalog")
	}
	log.Info().Msg("Asset catalog seeded successfully")

	// 5. Start HTTP server
	server := httpapi.New(httpapi.Config{
		Log:      log,
		Port:     cfg.Port,
		APIToken: cfg.APIToken,
		Reports:  reportService,
		Tracker:  trackerService,
	})

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to serve HTTP")
		}
	}()

	// Graceful shutdown
	waitForShutdown(server, log)
}

// newLogger builds the application logger at the configured level
func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		Level(parsed).
		With().
		Timestamp().
		Logger()
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(server *httpapi.Server, log zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shut down HTTP server cleanly")
		return
	}
	log.Info().Msg("HTTP server stopped")
}
