package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ScopeKind identifies the grouping a scope reference points at.
type ScopeKind string

// Possible scope kinds. The orphan pool is not addressable through a
// ScopeRef; it is toggled through a single global setting instead.
const (
	ScopeDeck     ScopeKind = "deck"
	ScopeCategory ScopeKind = "category"
)

// IsValid reports whether the kind is deck or category.
func (k ScopeKind) IsValid() bool {
	return k == ScopeDeck || k == ScopeCategory
}

// ParseScopeKind parses a scope kind from its string form.
// Returns ErrInvalidScopeKind for anything but "deck" or "category".
func ParseScopeKind(s string) (ScopeKind, error) {
	kind := ScopeKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", ErrInvalidScopeKind
	}
	return kind, nil
}

// ScopeRef identifies a single deck or category.
type ScopeRef struct {
	Kind ScopeKind `json:"kind"`
	ID   uuid.UUID `json:"id"`
}

// Validate checks if the scope reference has valid data.
func (r ScopeRef) Validate() error {
	if !r.Kind.IsValid() {
		return ErrInvalidScopeKind
	}
	if r.ID == uuid.Nil {
		return ErrInvalidID
	}
	return nil
}

// DeckRef builds a scope reference for a deck.
func DeckRef(id uuid.UUID) ScopeRef {
	return ScopeRef{Kind: ScopeDeck, ID: id}
}

// CategoryRef builds a scope reference for a category.
func CategoryRef(id uuid.UUID) ScopeRef {
	return ScopeRef{Kind: ScopeCategory, ID: id}
}

// Scope-specific validation errors
var (
	// ErrScopeNameEmpty is returned when a deck or category has no name.
	ErrScopeNameEmpty = errors.New("scope name cannot be empty")
)

// Deck is a named grouping of words with an independent training
// activation flag. Toggling the flag never touches the cards themselves;
// it only gates session eligibility and global due/streak math.
type Deck struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	LearningActive bool      `json:"is_learning_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewDeck creates a deck with the given name. The activation default is
// an explicit caller decision; new decks are created inactive unless the
// configuration says otherwise.
func NewDeck(name string, active bool) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:             uuid.New(),
		Name:           name,
		LearningActive: active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(d.Name) == "" {
		return ErrScopeNameEmpty
	}
	return nil
}

// Ref returns the scope reference for this deck.
func (d *Deck) Ref() ScopeRef {
	return DeckRef(d.ID)
}

// Category is a named grouping of words, orthogonal to decks, with its
// own training activation flag.
type Category struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	LearningActive bool      `json:"is_learning_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCategory creates a category with the given name and activation flag.
func NewCategory(name string, active bool) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
		ID:             uuid.New(),
		Name:           name,
		LearningActive: active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	if c.ID == uuid.Nil {
		return ErrInvalidID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrScopeNameEmpty
	}
	return nil
}

// Ref returns the scope reference for this category.
func (c *Category) Ref() ScopeRef {
	return CategoryRef(c.ID)
}
