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

// PostgresScopeStore implements the store.ScopeStore interface
// using a PostgreSQL database as the storage backend. Decks and
// categories live in separate tables; the orphan-pool flag lives in a
// single-row settings table.
type PostgresScopeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScopeStore creates a new PostgreSQL implementation of the
// ScopeStore interface. If logger is nil, a default logger will be used.
func NewPostgresScopeStore(db store.DBTX, logger *slog.Logger) *PostgresScopeStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScopeStore{
		db:     db,
		logger: logger.With(slog.String("component", "scope_store")),
	}
}

// Ensure PostgresScopeStore implements store.ScopeStore interface
var _ store.ScopeStore = (*PostgresScopeStore)(nil)

// WithTx implements store.ScopeStore.WithTx
func (s *PostgresScopeStore) WithTx(tx *sql.Tx) store.ScopeStore {
	return &PostgresScopeStore{
		db:     tx,
		logger: s.logger,
	}
}

// CreateDeck implements store.ScopeStore.CreateDeck
func (s *PostgresScopeStore) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO decks (id, name, is_learning_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		deck.ID, deck.Name, deck.LearningActive, deck.CreatedAt, deck.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return mapConnectionError(err)
	}

	log.Debug("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Bool("is_learning_active", deck.LearningActive))
	return nil
}

// GetDeck implements store.ScopeStore.GetDeck
func (s *PostgresScopeStore) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	query := `SELECT id, name, is_learning_active, created_at, updated_at FROM decks WHERE id = $1`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID, &deck.Name, &deck.LearningActive, &deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		return nil, mapConnectionError(err)
	}

	return &deck, nil
}

// ListDecks implements store.ScopeStore.ListDecks
func (s *PostgresScopeStore) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, is_learning_active, created_at, updated_at FROM decks ORDER BY name, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query decks", slog.String("error", err.Error()))
		return nil, mapConnectionError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var decks []*domain.Deck
	for rows.Next() {
		var deck domain.Deck
		if err := rows.Scan(&deck.ID, &deck.Name, &deck.LearningActive, &deck.CreatedAt, &deck.UpdatedAt); err != nil {
			return nil, err
		}
		decks = append(decks, &deck)
	}
	if err := rows.Err(); err != nil {
		return nil, mapConnectionError(err)
	}

	return decks, nil
}

// DeleteDeck implements store.ScopeStore.DeleteDeck
func (s *PostgresScopeStore) DeleteDeck(ctx context.Context, id uuid.UUID) error {
	return s.deleteScope(ctx, `DELETE FROM decks WHERE id = $1`, id, store.ErrDeckNotFound)
}

// CreateCategory implements store.ScopeStore.CreateCategory
func (s *PostgresScopeStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO categories (id, name, is_learning_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		category.ID, category.Name, category.LearningActive, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		log.Error("failed to create category",
			slog.String("error", err.Error()),
			slog.String("category_id", category.ID.String()))
		return mapConnectionError(err)
	}

	log.Debug("category created",
		slog.String("category_id", category.ID.String()),
		slog.Bool("is_learning_active", category.LearningActive))
	return nil
}

// GetCategory implements store.ScopeStore.GetCategory
func (s *PostgresScopeStore) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT id, name, is_learning_active, created_at, updated_at FROM categories WHERE id = $1`

	var category domain.Category
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&category.ID, &category.Name, &category.LearningActive, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCategoryNotFound
		}
		return nil, mapConnectionError(err)
	}

	return &category, nil
}

// ListCategories implements store.ScopeStore.ListCategories
func (s *PostgresScopeStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id, name, is_learning_active, created_at, updated_at FROM categories ORDER BY name, id`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, mapConnectionError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name, &category.LearningActive, &category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, mapConnectionError(err)
	}

	return categories, nil
}

// DeleteCategory implements store.ScopeStore.DeleteCategory
func (s *PostgresScopeStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.deleteScope(ctx, `DELETE FROM categories WHERE id = $1`, id, store.ErrCategoryNotFound)
}

// SetLearningActive implements store.ScopeStore.SetLearningActive
// The update is a single statement, so concurrent toggles of the same
// scope serialize on the row and the last committed write wins.
func (s *PostgresScopeStore) SetLearningActive(ctx context.Context, ref domain.ScopeRef, active bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ref.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var query string
	var notFound error
	switch ref.Kind {
	case domain.ScopeDeck:
		query = `UPDATE decks SET is_learning_active = $2, updated_at = now() WHERE id = $1`
		notFound = store.ErrDeckNotFound
	case domain.ScopeCategory:
		query = `UPDATE categories SET is_learning_active = $2, updated_at = now() WHERE id = $1`
		notFound = store.ErrCategoryNotFound
	default:
		return fmt.Errorf("%w: scope kind %q", store.ErrInvalidEntity, ref.Kind)
	}

	result, err := s.db.ExecContext(ctx, query, ref.ID, active)
	if err != nil {
		log.Error("failed to set learning active",
			slog.String("error", err.Error()),
			slog.String("scope_kind", string(ref.Kind)),
			slog.String("scope_id", ref.ID.String()))
		return mapConnectionError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}

	log.Info("scope learning flag updated",
		slog.String("scope_kind", string(ref.Kind)),
		slog.String("scope_id", ref.ID.String()),
		slog.Bool("active", active))
	return nil
}

// IsLearningActive implements store.ScopeStore.IsLearningActive
func (s *PostgresScopeStore) IsLearningActive(ctx context.Context, ref domain.ScopeRef) (bool, error) {
	if err := ref.Validate(); err != nil {
		return false, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var query string
	var notFound error
	switch ref.Kind {
	case domain.ScopeDeck:
		query = `SELECT is_learning_active FROM decks WHERE id = $1`
		notFound = store.ErrDeckNotFound
	case domain.ScopeCategory:
		query = `SELECT is_learning_active FROM categories WHERE id = $1`
		notFound = store.ErrCategoryNotFound
	default:
		return false, fmt.Errorf("%w: scope kind %q", store.ErrInvalidEntity, ref.Kind)
	}

	var active bool
	err := s.db.QueryRowContext(ctx, query, ref.ID).Scan(&active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, notFound
		}
		return false, mapConnectionError(err)
	}

	return active, nil
}

// OrphanPoolActive implements store.ScopeStore.OrphanPoolActive
// The settings table holds exactly one row, seeded by migration.
func (s *PostgresScopeStore) OrphanPoolActive(ctx context.Context) (bool, error) {
	var active bool
	err := s.db.QueryRowContext(ctx,
		`SELECT include_orphan_words FROM training_settings WHERE id = 1`).Scan(&active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Missing settings row means the migration seed was removed;
			// treat the pool as inactive rather than failing reads.
			return false, nil
		}
		return false, mapConnectionError(err)
	}

	return active, nil
}

// SetOrphanPoolActive implements store.ScopeStore.SetOrphanPoolActive
func (s *PostgresScopeStore) SetOrphanPoolActive(ctx context.Context, active bool) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO training_settings (id, include_orphan_words, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET include_orphan_words = $1, updated_at = now()
	`
	if _, err := s.db.ExecContext(ctx, query, active); err != nil {
		log.Error("failed to set orphan pool flag", slog.String("error", err.Error()))
		return mapConnectionError(err)
	}

	log.Info("orphan pool flag updated", slog.Bool("active", active))
	return nil
}

// deleteScope removes one scope row, mapping a zero row count to the
// kind-specific not-found sentinel.
func (s *PostgresScopeStore) deleteScope(ctx context.Context, query string, id uuid.UUID, notFound error) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete scope",
			slog.String("error", err.Error()),
			slog.String("scope_id", id.String()))
		return mapConnectionError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}

	return nil
}
