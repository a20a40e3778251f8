package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")
)

// Word is the value object handed to the card lifecycle hooks by the
// external CRUD layer. Words themselves are not persisted here; only the
// cards derived from them are. A word belongs to at most one deck and at
// most one category, independently; with neither it is an orphan.
type Word struct {
	ID         uuid.UUID  `json:"id"`
	DeckID     *uuid.UUID `json:"deck_id,omitempty"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	Type       CardType   `json:"card_type"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Validate checks if the Word has valid data.
func (w Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if !w.Type.IsValid() {
		return ErrInvalidCardType
	}

	return nil
}

// IsOrphan reports whether the word belongs to neither a deck nor a category.
func (w Word) IsOrphan() bool {
	return w.DeckID == nil && w.CategoryID == nil
}
