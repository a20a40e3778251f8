package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CardStatus represents where a card sits in its learning lifecycle.
type CardStatus string

// Possible card status values. A card starts as StatusNew and only the
// answer processing path moves it forward; an incorrect answer at any
// non-new state demotes it back to StatusLearning, never to StatusNew.
const (
	StatusNew      CardStatus = "new"
	StatusLearning CardStatus = "learning"
	StatusReview   CardStatus = "review"
	StatusMastered CardStatus = "mastered"
)

// IsValid reports whether the status is one of the defined states.
func (s CardStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusLearning, StatusReview, StatusMastered:
		return true
	default:
		return false
	}
}

// CardType identifies which reviewable direction of a word a card covers.
type CardType string

// Possible card type values. Empty words produce no card at all; normal
// and inverted words each produce exactly one card carrying their type.
const (
	CardTypeNormal   CardType = "normal"
	CardTypeInverted CardType = "inverted"
	CardTypeEmpty    CardType = "empty"
)

// IsValid reports whether the card type is one of the defined values.
func (t CardType) IsValid() bool {
	switch t {
	case CardTypeNormal, CardTypeInverted, CardTypeEmpty:
		return true
	default:
		return false
	}
}

// Reviewable reports whether a word of this type produces a card.
func (t CardType) Reviewable() bool {
	return t == CardTypeNormal || t == CardTypeInverted
}

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = errors.New("card ID cannot be empty")

	// ErrCardWordIDEmpty is returned when a card's word ID is empty or nil.
	ErrCardWordIDEmpty = errors.New("card word ID cannot be empty")

	// ErrCardTypeNotReviewable is returned when creating a card for an
	// empty word.
	ErrCardTypeNotReviewable = errors.New("card type does not produce a reviewable card")

	// ErrCardDueMissing is returned when a non-new card has no due timestamp.
	ErrCardDueMissing = errors.New("card past the new state must have a due timestamp")
)

// Card is one reviewable scheduling unit derived from a Word and its type.
// Ownership (deck/category) is denormalized from the word so scope
// filtering never needs a join. Scheduling fields are written only by the
// srs scheduler via the answer processor.
type Card struct {
	ID         uuid.UUID  `json:"id"`
	WordID     uuid.UUID  `json:"word_id"`
	Type       CardType   `json:"card_type"`
	Status     CardStatus `json:"status"`
	DueAt      *time.Time `json:"due_at"` // nil only while Status == new
	DeckID     *uuid.UUID `json:"deck_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`

	// Scheduling metadata, opaque to the orchestration layer.
	IntervalDays       int     `json:"interval_days"`
	EaseFactor         float64 `json:"ease_factor"`
	ConsecutiveCorrect int     `json:"consecutive_correct"`
	ReviewCount        int     `json:"review_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates the card for a word. The card starts in the new state
// with no due timestamp and the default ease factor.
// Returns an error if validation fails or the word type is not reviewable.
func NewCard(word Word) (*Card, error) {
	if !word.Type.Reviewable() {
		return nil, ErrCardTypeNotReviewable
	}

	now := time.Now().UTC()
	card := &Card{
		ID:         uuid.New(),
		WordID:     word.ID,
		Type:       word.Type,
		Status:     StatusNew,
		DueAt:      nil,
		DeckID:     word.DeckID,
		CategoryID: word.CategoryID,
		EaseFactor: 2.5,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.WordID == uuid.Nil {
		return ErrCardWordIDEmpty
	}

	if !c.Type.Reviewable() {
		return ErrCardTypeNotReviewable
	}

	if !c.Status.IsValid() {
		return ErrInvalidCardStatus
	}

	if c.Status != StatusNew && c.DueAt == nil {
		return ErrCardDueMissing
	}

	return nil
}

// IsOrphan reports whether the card belongs to neither a deck nor a category.
func (c *Card) IsOrphan() bool {
	return c.DeckID == nil && c.CategoryID == nil
}

// InScope reports whether the card belongs to the given deck or category.
func (c *Card) InScope(ref ScopeRef) bool {
	switch ref.Kind {
	case ScopeDeck:
		return c.DeckID != nil && *c.DeckID == ref.ID
	case ScopeCategory:
		return c.CategoryID != nil && *c.CategoryID == ref.ID
	default:
		return false
	}
}

// IsDue reports whether the card is due at the given instant. New cards
// are never due; they enter the schedule through their first answer.
func (c *Card) IsDue(now time.Time) bool {
	return c.Status != StatusNew && c.DueAt != nil && !c.DueAt.After(now)
}

// Clone returns a deep copy of the card. The scheduler returns new
// instances instead of mutating its input.
func (c *Card) Clone() *Card {
	clone := *c
	if c.DueAt != nil {
		due := *c.DueAt
		clone.DueAt = &due
	}
	if c.DeckID != nil {
		id := *c.DeckID
		clone.DeckID = &id
	}
	if c.CategoryID != nil {
		id := *c.CategoryID
		clone.CategoryID = &id
	}
	return &clone
}
