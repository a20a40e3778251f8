package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/domain"
)

// ScopeStore defines the interface for deck/category persistence and the
// global orphan-pool setting. Activation flags live on the entity rows and
// are mutated with single atomic updates; readers never observe a value
// that was not committed.
type ScopeStore interface {
	// CreateDeck saves a new deck.
	// Returns validation errors if the deck data is invalid.
	CreateDeck(ctx context.Context, deck *domain.Deck) error

	// GetDeck retrieves a deck by ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListDecks returns all decks ordered by name.
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// DeleteDeck removes a deck. Cards in the deck are not touched; their
	// deck reference is cleared by the word CRUD layer, not here.
	// Returns ErrDeckNotFound if the deck does not exist.
	DeleteDeck(ctx context.Context, id uuid.UUID) error

	// CreateCategory saves a new category.
	CreateCategory(ctx context.Context, category *domain.Category) error

	// GetCategory retrieves a category by ID.
	// Returns ErrCategoryNotFound if the category does not exist.
	GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*domain.Category, error)

	// DeleteCategory removes a category.
	// Returns ErrCategoryNotFound if the category does not exist.
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// SetLearningActive sets the activation flag of a deck or category.
	// The operation is an atomic single-row update and is idempotent:
	// activating an already-active scope succeeds without effect.
	// Returns ErrDeckNotFound/ErrCategoryNotFound if the scope is missing,
	// including when it was deleted between a read and this write.
	SetLearningActive(ctx context.Context, ref domain.ScopeRef, active bool) error

	// IsLearningActive reports the committed activation flag of a scope.
	// Returns ErrDeckNotFound/ErrCategoryNotFound if the scope is missing.
	IsLearningActive(ctx context.Context, ref domain.ScopeRef) (bool, error)

	// OrphanPoolActive reports whether orphan words participate in
	// general training.
	OrphanPoolActive(ctx context.Context) (bool, error)

	// SetOrphanPoolActive sets the single global orphan-pool flag.
	SetOrphanPoolActive(ctx context.Context, active bool) error

	// WithTx returns a new ScopeStore instance bound to the transaction.
	WithTx(tx *sql.Tx) ScopeStore
}
