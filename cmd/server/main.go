package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tradeinsight/analytics/internal/config"
	"github.com/tradeinsight/analytics/internal/database"
	"github.com/tradeinsight/analytics/internal/marketdata"
	"github.com/tradeinsight/analytics/internal/modules/risk"
	"github.com/tradeinsight/analytics/internal/scheduler"
	"github.com/tradeinsight/analytics/internal/server"
	"github.com/tradeinsight/analytics/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info"})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting analytics service")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Risk profiles: static defaults, overlaid with persisted estimates
	profiles := risk.NewProfileStore()
	if err := risk.LoadEstimates(db, profiles, log); err != nil {
		log.Warn().Err(err).Msg("Could not load persisted risk profiles, using defaults")
	}

	// Initialize scheduler
	sched := scheduler.New(log)
	sched.Start()
	defer sched.Stop()

	// Register background jobs
	if err := registerJobs(sched, db, profiles, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:     cfg.Port,
		Log:      log,
		DB:       db,
		Config:   cfg,
		Profiles: profiles,
		DevMode:  cfg.DevMode,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(sched *scheduler.Scheduler, db *database.DB, profiles *risk.ProfileStore, cfg *config.Config, log zerolog.Logger) error {
	history := marketdata.NewHistoryStore(cfg.HistoryDir, log)

	// Refresh realized volatility and correlation estimates nightly
	return sched.AddJob("0 0 22 * * *", risk.NewRefreshJob(history, profiles, db, log))
}
