package training

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
	"github.com/voclab/trainer-api/internal/store"
)

// SubmitAnswer implements Service.SubmitAnswer.
//
// The card is locked for the duration of the transaction, so two
// concurrent answers for the same card serialize and the scheduler never
// operates on a stale read. Alongside the card update one answer event is
// appended for the streak/success-rate aggregation.
func (s *service) SubmitAnswer(
	ctx context.Context,
	cardID uuid.UUID,
	quality domain.AnswerQuality,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !quality.IsValid() {
		log.Warn("invalid answer quality",
			slog.String("card_id", cardID.String()),
			slog.String("quality", string(quality)))
		return nil, ErrInvalidQuality
	}

	now := s.now()

	var updated *domain.Card
	err := s.tx.InTx(ctx, func(ctx context.Context, cards store.CardStore, logs store.ReviewLogStore) error {
		card, err := cards.GetForUpdate(ctx, cardID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrCardNotFound
			}
			return err
		}

		next, err := s.scheduler.Schedule(card, quality, now)
		if err != nil {
			return err
		}

		if err := cards.Update(ctx, next); err != nil {
			return err
		}

		event, err := domain.NewReviewLog(card.ID, quality, now)
		if err != nil {
			return err
		}
		if err := logs.Create(ctx, event); err != nil {
			return err
		}

		updated = next
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCardNotFound) {
			log.Warn("card not found for answer", slog.String("card_id", cardID.String()))
			return nil, ErrCardNotFound
		}

		log.Error("failed to submit answer",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("quality", string(quality)))
		return nil, &ServiceError{Operation: "submit_answer", Message: "failed to submit answer", Err: err}
	}

	log.Debug("answer processed",
		slog.String("card_id", cardID.String()),
		slog.String("quality", string(quality)),
		slog.String("status", string(updated.Status)),
		slog.Time("due_at", *updated.DueAt))

	return updated, nil
}
