package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScopeKind(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		input    string
		expected ScopeKind
		wantErr  bool
	}{
		{input: "deck", expected: ScopeDeck},
		{input: "category", expected: ScopeCategory},
		{input: "DECK", expected: ScopeDeck},
		{input: "orphan", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			kind, err := ParseScopeKind(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidScopeKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, kind)
		})
	}
}

func TestScopeRefValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.NoError(t, DeckRef(uuid.New()).Validate())
	assert.NoError(t, CategoryRef(uuid.New()).Validate())
	assert.ErrorIs(t, ScopeRef{Kind: "pool", ID: uuid.New()}.Validate(), ErrInvalidScopeKind)
	assert.ErrorIs(t, DeckRef(uuid.Nil).Validate(), ErrInvalidID)
}

func TestNewDeck(t *testing.T) {
	t.Parallel() // Enable parallel execution

	deck, err := NewDeck("Spanish Verbs", false)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, deck.ID)
	assert.False(t, deck.LearningActive, "new decks honor the caller's activation decision")
	assert.Equal(t, ScopeDeck, deck.Ref().Kind)
	assert.Equal(t, deck.ID, deck.Ref().ID)

	_, err = NewDeck("   ", false)
	assert.ErrorIs(t, err, ErrScopeNameEmpty)
}

func TestNewCategory(t *testing.T) {
	t.Parallel() // Enable parallel execution

	category, err := NewCategory("Food", true)
	require.NoError(t, err)
	assert.True(t, category.LearningActive)
	assert.Equal(t, ScopeCategory, category.Ref().Kind)

	_, err = NewCategory("", true)
	assert.ErrorIs(t, err, ErrScopeNameEmpty)
}
