package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/api/shared"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
	"github.com/voclab/trainer-api/internal/service/training"
)

// ScopeHandler handles scope activation and training settings requests
type ScopeHandler struct {
	service training.Service
	logger  *slog.Logger
}

// NewScopeHandler creates a new ScopeHandler
func NewScopeHandler(service training.Service, logger *slog.Logger) *ScopeHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for ScopeHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ScopeHandler")
	}

	return &ScopeHandler{
		service: service,
		logger:  logger.With(slog.String("component", "scope_handler")),
	}
}

// ActivateScope handles POST /api/scopes/{kind}/{id}/activate requests
// Activating an already-active scope succeeds with no effect.
func (h *ScopeHandler) ActivateScope(w http.ResponseWriter, r *http.Request) {
	h.setScopeActive(w, r, true)
}

// DeactivateScope handles POST /api/scopes/{kind}/{id}/deactivate requests
func (h *ScopeHandler) DeactivateScope(w http.ResponseWriter, r *http.Request) {
	h.setScopeActive(w, r, false)
}

func (h *ScopeHandler) setScopeActive(w http.ResponseWriter, r *http.Request, active bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	ref, ok := h.scopeRefFromPath(w, r)
	if !ok {
		return
	}

	var err error
	if active {
		err = h.service.ActivateScope(r.Context(), ref)
	} else {
		err = h.service.DeactivateScope(r.Context(), ref)
	}
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update scope"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("scope activation updated",
		slog.String("scope_kind", string(ref.Kind)),
		slog.String("scope_id", ref.ID.String()),
		slog.Bool("active", active))
	w.WriteHeader(http.StatusNoContent)
}

// SettingsRequest represents the request body for PATCH /api/settings
type SettingsRequest struct {
	IncludeOrphanWords *bool `json:"include_orphan_words" validate:"required"`
}

// UpdateSettings handles PATCH /api/settings requests
// It currently carries the single global orphan-pool flag.
func (h *ScopeHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", err.Error()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := h.service.SetOrphanPoolActive(r.Context(), *req.IncludeOrphanWords); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update settings"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("settings updated", slog.Bool("include_orphan_words", *req.IncludeOrphanWords))
	w.WriteHeader(http.StatusNoContent)
}

// scopeRefFromPath extracts and validates the {kind}/{id} path segments.
// It writes the error response itself and reports success via ok.
func (h *ScopeHandler) scopeRefFromPath(w http.ResponseWriter, r *http.Request) (domain.ScopeRef, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	kind, err := domain.ParseScopeKind(chi.URLParam(r, "kind"))
	if err != nil {
		log.Warn("invalid scope kind", slog.String("kind", chi.URLParam(r, "kind")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid scope kind")
		return domain.ScopeRef{}, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("invalid scope ID format", slog.String("scope_id", chi.URLParam(r, "id")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid scope ID format")
		return domain.ScopeRef{}, false
	}

	return domain.ScopeRef{Kind: kind, ID: id}, true
}
