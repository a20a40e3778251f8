package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/domain"
)

// CardStore defines the interface for card data persistence. The card
// store is the authoritative record of every card's scheduling state and
// its denormalized deck/category ownership.
type CardStore interface {
	// CreateMultiple saves multiple cards to the store. This method MUST
	// be run within a transaction for atomicity; use WithTx together with
	// store.RunInTransaction. All cards must be valid according to domain
	// validation rules. Returns ErrCardExists if a card for the same word
	// and type already exists.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetForUpdate retrieves a card with a row-level lock
	// (SELECT ... FOR UPDATE). Use within a transaction when the card
	// will be updated, so concurrent answers for the same card serialize
	// instead of applying scheduler output to a stale read.
	// Returns ErrCardNotFound if the card does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Update persists a card's scheduling state and ownership.
	// Returns ErrCardNotFound if the card does not exist.
	Update(ctx context.Context, card *domain.Card) error

	// ListByWordID returns all cards belonging to a word, in creation order.
	// An unknown word yields an empty slice, not an error; word existence
	// is owned by the external CRUD layer.
	ListByWordID(ctx context.Context, wordID uuid.UUID) ([]*domain.Card, error)

	// DeleteByWordID removes all cards for a word and reports how many
	// were removed. Zero deletions is not an error.
	DeleteByWordID(ctx context.Context, wordID uuid.UUID) (int64, error)

	// ListByScope returns all cards owned by the given deck or category,
	// in creation order, regardless of the scope's activation flag.
	ListByScope(ctx context.Context, ref domain.ScopeRef) ([]*domain.Card, error)

	// ListOrphans returns all cards whose word has neither deck nor
	// category, in creation order.
	ListOrphans(ctx context.Context) ([]*domain.Card, error)

	// ListAll returns every card in creation order. The aggregator uses
	// this for dashboard snapshots.
	ListAll(ctx context.Context) ([]*domain.Card, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) CardStore
}
