package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/api/shared"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
	"github.com/voclab/trainer-api/internal/service/training"
)

// CardResponse represents the response data for a card
type CardResponse struct {
	ID                 string     `json:"id"`
	WordID             string     `json:"word_id"`
	CardType           string     `json:"card_type"`
	Status             string     `json:"status"`
	DueAt              *time.Time `json:"due_at"`
	DeckID             *string    `json:"deck_id,omitempty"`
	CategoryID         *string    `json:"category_id,omitempty"`
	IntervalDays       int        `json:"interval_days"`
	EaseFactor         float64    `json:"ease_factor"`
	ConsecutiveCorrect int        `json:"consecutive_correct"`
	ReviewCount        int        `json:"review_count"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// SessionResponse represents the response data for a built training session
type SessionResponse struct {
	Cards      []CardResponse `json:"cards"`
	TotalCount int            `json:"total_count"`
	BuiltAt    time.Time      `json:"built_at"`
}

// TrainingHandler handles dashboard, stats, session and answer requests
type TrainingHandler struct {
	service training.Service
	logger  *slog.Logger
}

// NewTrainingHandler creates a new TrainingHandler
func NewTrainingHandler(service training.Service, logger *slog.Logger) *TrainingHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for TrainingHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TrainingHandler")
	}

	return &TrainingHandler{
		service: service,
		logger:  logger.With(slog.String("component", "training_handler")),
	}
}

// GetDashboard handles GET /api/dashboard requests
// It returns the full training dashboard snapshot, recomputed on every call.
func (h *TrainingHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to load dashboard"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("dashboard computed",
		slog.Int("decks", len(dashboard.Decks)),
		slog.Int("categories", len(dashboard.Categories)),
		slog.Int("total_due", dashboard.QuickStats.TotalDue))
	shared.RespondWithJSON(w, r, http.StatusOK, dashboard)
}

// GetStats handles GET /api/stats requests
// The period query parameter selects the trailing window; it defaults to "all".
func (h *TrainingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	period := domain.StatsPeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = domain.PeriodAll
	}

	stats, err := h.service.Stats(r.Context(), period)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to compute stats"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("stats computed",
		slog.String("period", string(period)),
		slog.Int("answer_count", stats.AnswerCount))
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// BuildSession handles GET /api/session requests
// Query parameters: scope_kind and scope_id select one explicit scope
// (both or neither), duration bounds the session in minutes, and
// new_cards=true mixes unseen cards into the queue.
func (h *TrainingHandler) BuildSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	query := r.URL.Query()
	req := training.SessionRequest{
		IncludeNew: query.Get("new_cards") == "true",
	}

	scopeKind := query.Get("scope_kind")
	scopeID := query.Get("scope_id")
	if (scopeKind == "") != (scopeID == "") {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"scope_kind and scope_id must be provided together")
		return
	}
	if scopeKind != "" {
		kind, err := domain.ParseScopeKind(scopeKind)
		if err != nil {
			log.Warn("invalid scope kind", slog.String("scope_kind", scopeKind))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid scope kind")
			return
		}
		id, err := uuid.Parse(scopeID)
		if err != nil {
			log.Warn("invalid scope ID format", slog.String("scope_id", scopeID))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid scope ID format")
			return
		}
		req.Scope = &domain.ScopeRef{Kind: kind, ID: id}
	}

	if raw := query.Get("duration"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid duration")
			return
		}
		req.DurationMinutes = minutes
	}

	session, err := h.service.BuildSession(r.Context(), req)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build session"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("session built",
		slog.Int("cards", len(session.Cards)),
		slog.Int("total_count", session.TotalCount))
	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}

// AnswerRequest represents the request body for submitting an answer
type AnswerRequest struct {
	Quality string `json:"quality" validate:"required,oneof=again hard good easy"`
}

// SubmitAnswer handles POST /api/cards/{id}/answer requests
// It applies the answer through the scheduler and returns the rescheduled card.
func (h *TrainingHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathCardID := chi.URLParam(r, "id")
	if pathCardID == "" {
		log.Warn("card ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Card ID is required")
		return
	}

	cardID, err := uuid.Parse(pathCardID)
	if err != nil {
		log.Warn("invalid card ID format", slog.String("card_id", pathCardID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card ID format")
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card, err := h.service.SubmitAnswer(r.Context(), cardID, domain.AnswerQuality(req.Quality))
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit answer"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("answer submitted",
		slog.String("card_id", cardID.String()),
		slog.String("quality", req.Quality),
		slog.String("status", string(card.Status)))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card))
}

// cardToResponse converts a domain.Card to a CardResponse
func cardToResponse(card *domain.Card) CardResponse {
	resp := CardResponse{
		ID:                 card.ID.String(),
		WordID:             card.WordID.String(),
		CardType:           string(card.Type),
		Status:             string(card.Status),
		DueAt:              card.DueAt,
		IntervalDays:       card.IntervalDays,
		EaseFactor:         card.EaseFactor,
		ConsecutiveCorrect: card.ConsecutiveCorrect,
		ReviewCount:        card.ReviewCount,
		CreatedAt:          card.CreatedAt,
		UpdatedAt:          card.UpdatedAt,
	}
	if card.DeckID != nil {
		id := card.DeckID.String()
		resp.DeckID = &id
	}
	if card.CategoryID != nil {
		id := card.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// sessionToResponse converts a domain.TrainingSession to a SessionResponse
func sessionToResponse(session *domain.TrainingSession) SessionResponse {
	cards := make([]CardResponse, 0, len(session.Cards))
	for _, card := range session.Cards {
		cards = append(cards, cardToResponse(card))
	}
	return SessionResponse{
		Cards:      cards,
		TotalCount: session.TotalCount,
		BuiltAt:    session.BuiltAt,
	}
}
