package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
	"github.com/voclab/trainer-api/internal/store"
)

// cardColumns is the canonical select list shared by every card query.
const cardColumns = `id, word_id, card_type, status, due_at, deck_id, category_id,
	interval_days, ease_factor, consecutive_correct, review_count, created_at, updated_at`

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateMultiple implements store.CardStore.CreateMultiple
// It saves all cards, validating each first. Must run within a transaction.
// Returns store.ErrCardExists if a card for the same word and type exists.
func (s *PostgresCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO cards (id, word_id, card_type, status, due_at, deck_id, category_id,
			interval_days, ease_factor, consecutive_correct, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	for _, card := range cards {
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during create",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		_, err := s.db.ExecContext(
			ctx,
			query,
			card.ID,
			card.WordID,
			card.Type,
			card.Status,
			card.DueAt,
			card.DeckID,
			card.CategoryID,
			card.IntervalDays,
			card.EaseFactor,
			card.ConsecutiveCorrect,
			card.ReviewCount,
			card.CreatedAt,
			card.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				log.Debug("card already exists",
					slog.String("word_id", card.WordID.String()),
					slog.String("card_type", string(card.Type)))
				return store.ErrCardExists
			}
			log.Error("failed to create card",
				slog.String("error", err.Error()),
				slog.String("card_id", card.ID.String()))
			return mapConnectionError(err)
		}
	}

	log.Debug("cards created", slog.Int("count", len(cards)))
	return nil
}

// GetByID implements store.CardStore.GetByID
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1`
	return s.queryOne(ctx, query, id)
}

// GetForUpdate implements store.CardStore.GetForUpdate
// It locks the card row for the duration of the surrounding transaction.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE id = $1 FOR UPDATE`
	return s.queryOne(ctx, query, id)
}

// Update implements store.CardStore.Update
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE cards
		SET status = $2, due_at = $3, deck_id = $4, category_id = $5,
			interval_days = $6, ease_factor = $7, consecutive_correct = $8,
			review_count = $9, updated_at = $10
		WHERE id = $1
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.Status,
		card.DueAt,
		card.DeckID,
		card.CategoryID,
		card.IntervalDays,
		card.EaseFactor,
		card.ConsecutiveCorrect,
		card.ReviewCount,
		card.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return mapConnectionError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrCardNotFound
	}

	return nil
}

// ListByWordID implements store.CardStore.ListByWordID
func (s *PostgresCardStore) ListByWordID(ctx context.Context, wordID uuid.UUID) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards WHERE word_id = $1 ORDER BY created_at, id`
	return s.queryMany(ctx, query, wordID)
}

// DeleteByWordID implements store.CardStore.DeleteByWordID
// Review logs for the deleted cards go with them via ON DELETE CASCADE.
func (s *PostgresCardStore) DeleteByWordID(ctx context.Context, wordID uuid.UUID) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE word_id = $1`, wordID)
	if err != nil {
		log.Error("failed to delete cards for word",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return 0, mapConnectionError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Debug("cards deleted for word",
		slog.String("word_id", wordID.String()),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// ListByScope implements store.CardStore.ListByScope
func (s *PostgresCardStore) ListByScope(ctx context.Context, ref domain.ScopeRef) ([]*domain.Card, error) {
	var query string
	switch ref.Kind {
	case domain.ScopeDeck:
		query = `SELECT ` + cardColumns + ` FROM cards WHERE deck_id = $1 ORDER BY created_at, id`
	case domain.ScopeCategory:
		query = `SELECT ` + cardColumns + ` FROM cards WHERE category_id = $1 ORDER BY created_at, id`
	default:
		return nil, fmt.Errorf("%w: scope kind %q", store.ErrInvalidEntity, ref.Kind)
	}

	return s.queryMany(ctx, query, ref.ID)
}

// ListOrphans implements store.CardStore.ListOrphans
func (s *PostgresCardStore) ListOrphans(ctx context.Context) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards
		WHERE deck_id IS NULL AND category_id IS NULL ORDER BY created_at, id`
	return s.queryMany(ctx, query)
}

// ListAll implements store.CardStore.ListAll
func (s *PostgresCardStore) ListAll(ctx context.Context) ([]*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM cards ORDER BY created_at, id`
	return s.queryMany(ctx, query)
}

// queryOne runs a single-row card query and maps sql.ErrNoRows to
// store.ErrCardNotFound.
func (s *PostgresCardStore) queryOne(ctx context.Context, query string, args ...any) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, query, args...)
	card, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to query card", slog.String("error", err.Error()))
		return nil, mapConnectionError(err)
	}

	return card, nil
}

// queryMany runs a multi-row card query.
func (s *PostgresCardStore) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query cards", slog.String("error", err.Error()))
		return nil, mapConnectionError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, mapConnectionError(err)
	}

	return cards, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanCard.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanCard reads one card row into a domain.Card.
func scanCard(row rowScanner) (*domain.Card, error) {
	var card domain.Card
	var cardType, status string

	err := row.Scan(
		&card.ID,
		&card.WordID,
		&cardType,
		&status,
		&card.DueAt,
		&card.DeckID,
		&card.CategoryID,
		&card.IntervalDays,
		&card.EaseFactor,
		&card.ConsecutiveCorrect,
		&card.ReviewCount,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	card.Type = domain.CardType(cardType)
	card.Status = domain.CardStatus(status)
	return &card, nil
}
