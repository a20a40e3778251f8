package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/api/shared"
	"github.com/voclab/trainer-api/internal/platform/logger"
	"github.com/voclab/trainer-api/internal/service/training"
)

// WordCardsResponse represents the per-word card list
type WordCardsResponse struct {
	WordID string         `json:"word_id"`
	Cards  []CardResponse `json:"cards"`
}

// WordHandler handles per-word card queries
type WordHandler struct {
	service training.Service
	logger  *slog.Logger
}

// NewWordHandler creates a new WordHandler
func NewWordHandler(service training.Service, logger *slog.Logger) *WordHandler {
	if service == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("service cannot be nil for WordHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for WordHandler")
	}

	return &WordHandler{
		service: service,
		logger:  logger.With(slog.String("component", "word_handler")),
	}
}

// GetWordCards handles GET /api/words/{id}/cards requests
// A word without cards returns an empty list, not a 404; the word itself
// lives in another system and cannot be looked up here.
func (h *WordHandler) GetWordCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	wordID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		log.Warn("invalid word ID format", slog.String("word_id", chi.URLParam(r, "id")))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID format")
		return
	}

	cards, err := h.service.CardsForWord(r.Context(), wordID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to list cards"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := WordCardsResponse{
		WordID: wordID.String(),
		Cards:  make([]CardResponse, 0, len(cards)),
	}
	for _, card := range cards {
		response.Cards = append(response.Cards, cardToResponse(card))
	}

	log.Debug("word cards listed",
		slog.String("word_id", wordID.String()),
		slog.Int("count", len(cards)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
