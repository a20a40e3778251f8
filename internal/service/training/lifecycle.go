package training

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
	"github.com/voclab/trainer-api/internal/store"
)

// OnWordCreated implements Service.OnWordCreated. The external CRUD layer
// calls this after persisting a word so the card store stays consistent.
// Empty words produce no card.
func (s *service) OnWordCreated(ctx context.Context, word domain.Word) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		return nil, &ServiceError{Operation: "word_created", Message: "invalid word", Err: err}
	}

	if !word.Type.Reviewable() {
		log.Debug("word type produces no card", slog.String("word_id", word.ID.String()))
		return nil, nil
	}

	card, err := domain.NewCard(word)
	if err != nil {
		return nil, &ServiceError{Operation: "word_created", Message: "failed to build card", Err: err}
	}

	created := []*domain.Card{card}
	err = s.tx.InTx(ctx, func(ctx context.Context, cards store.CardStore, _ store.ReviewLogStore) error {
		return cards.CreateMultiple(ctx, created)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			// The hook is at-least-once; a replay finds the card already
			// there and reports the existing state instead of failing.
			log.Debug("card already exists for word",
				slog.String("word_id", word.ID.String()))
			return s.cards.ListByWordID(ctx, word.ID)
		}
		log.Error("failed to create card for word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return nil, &ServiceError{Operation: "word_created", Message: "failed to create card", Err: err}
	}

	log.Debug("card created for word",
		slog.String("word_id", word.ID.String()),
		slog.String("card_id", card.ID.String()),
		slog.String("card_type", string(card.Type)))
	return created, nil
}

// OnWordDeleted implements Service.OnWordDeleted.
func (s *service) OnWordDeleted(ctx context.Context, wordID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if wordID == uuid.Nil {
		return &ServiceError{Operation: "word_deleted", Message: "invalid word ID", Err: domain.ErrInvalidID}
	}

	deleted, err := s.cards.DeleteByWordID(ctx, wordID)
	if err != nil {
		log.Error("failed to delete cards for word",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return &ServiceError{Operation: "word_deleted", Message: "failed to delete cards", Err: err}
	}

	log.Debug("cards deleted for word",
		slog.String("word_id", wordID.String()),
		slog.Int64("deleted", deleted))
	return nil
}

// CardsForWord implements Service.CardsForWord.
func (s *service) CardsForWord(ctx context.Context, wordID uuid.UUID) ([]*domain.Card, error) {
	if wordID == uuid.Nil {
		return nil, &ServiceError{Operation: "cards_for_word", Message: "invalid word ID", Err: domain.ErrInvalidID}
	}

	cards, err := s.cards.ListByWordID(ctx, wordID)
	if err != nil {
		return nil, &ServiceError{Operation: "cards_for_word", Message: "failed to list cards", Err: err}
	}
	return cards, nil
}
