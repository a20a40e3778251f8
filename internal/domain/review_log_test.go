package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerQuality(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.True(t, QualityAgain.IsValid())
	assert.True(t, QualityEasy.IsValid())
	assert.False(t, AnswerQuality("perfect").IsValid())

	assert.False(t, QualityAgain.Correct(), "again is the sole incorrect grade")
	assert.True(t, QualityHard.Correct())
	assert.True(t, QualityGood.Correct())
	assert.True(t, QualityEasy.Correct())
	assert.False(t, AnswerQuality("perfect").Correct())
}

func TestNewReviewLog(t *testing.T) {
	t.Parallel() // Enable parallel execution

	cardID := uuid.New()
	answeredAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	log, err := NewReviewLog(cardID, QualityGood, answeredAt)
	require.NoError(t, err)
	assert.Equal(t, cardID, log.CardID)
	assert.True(t, log.Correct)
	assert.Equal(t, answeredAt, log.AnsweredAt)

	log, err = NewReviewLog(cardID, QualityAgain, answeredAt)
	require.NoError(t, err)
	assert.False(t, log.Correct)

	_, err = NewReviewLog(uuid.Nil, QualityGood, answeredAt)
	assert.ErrorIs(t, err, ErrReviewLogCardIDEmpty)

	_, err = NewReviewLog(cardID, "perfect", answeredAt)
	assert.ErrorIs(t, err, ErrInvalidQuality)
}
