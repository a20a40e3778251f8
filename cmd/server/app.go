package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/voclab/trainer-api/internal/config"
	"github.com/voclab/trainer-api/internal/domain/srs"
	"github.com/voclab/trainer-api/internal/platform/postgres"
	"github.com/voclab/trainer-api/internal/service/training"
	"github.com/voclab/trainer-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	cardStore      store.CardStore
	scopeStore     store.ScopeStore
	reviewLogStore store.ReviewLogStore

	// Service interfaces
	scheduler       srs.Scheduler
	trainingService training.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before application
// initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.scopeStore = postgres.NewPostgresScopeStore(db, logger)
	app.reviewLogStore = postgres.NewPostgresReviewLogStore(db, logger)

	// Initialize the scheduler with default parameters
	app.scheduler = srs.NewDefaultScheduler()

	// Initialize the training service
	txRunner := training.NewSQLTxRunner(db, app.cardStore, app.reviewLogStore)
	trainingService, err := training.NewService(
		txRunner,
		app.cardStore,
		app.scopeStore,
		app.reviewLogStore,
		app.scheduler,
		cfg.Training,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create training service: %w", err)
	}
	app.trainingService = trainingService

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
