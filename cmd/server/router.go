package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/voclab/trainer-api/internal/api"
	apiMiddleware "github.com/voclab/trainer-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: app.config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	// Create API handlers using the application's services
	trainingHandler := api.NewTrainingHandler(app.trainingService, app.logger)
	scopeHandler := api.NewScopeHandler(app.trainingService, app.logger)
	wordHandler := api.NewWordHandler(app.trainingService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Dashboard and stats
		r.Get("/dashboard", trainingHandler.GetDashboard)
		r.Get("/stats", trainingHandler.GetStats)

		// Scope activation and settings
		r.Post("/scopes/{kind}/{id}/activate", scopeHandler.ActivateScope)
		r.Post("/scopes/{kind}/{id}/deactivate", scopeHandler.DeactivateScope)
		r.Patch("/settings", scopeHandler.UpdateSettings)

		// Session building and answer processing
		r.Get("/session", trainingHandler.BuildSession)
		r.Post("/cards/{id}/answer", trainingHandler.SubmitAnswer)

		// Per-word card lookup
		r.Get("/words/{id}/cards", wordHandler.GetWordCards)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
