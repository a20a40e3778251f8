// Package srs implements the spaced-repetition scheduling algorithm
// behind the Scheduler interface. The orchestration layer treats it as a
// black box: card in, answer quality in, rescheduled card out.
package srs

import (
	"errors"
	"time"

	"github.com/voclab/trainer-api/internal/domain"
)

// Common errors
var (
	ErrNilCard        = errors.New("card cannot be nil")
	ErrInvalidQuality = errors.New("invalid answer quality")
)

// Scheduler computes the next scheduling state of a card for an answer.
//
// Implementations must keep two properties the orchestration layer relies
// on: repeated correct answers eventually reach the mastered status, and
// any incorrect answer demotes the status toward learning and shortens
// the next due timestamp.
type Scheduler interface {
	// Schedule returns a new card with updated status, due timestamp and
	// scheduling metadata. The input card is not modified.
	Schedule(card *domain.Card, quality domain.AnswerQuality, now time.Time) (*domain.Card, error)
}

// defaultScheduler is the standard SM-2-variant implementation.
type defaultScheduler struct {
	params *Params
}

// NewDefaultScheduler creates a scheduler with default parameters.
func NewDefaultScheduler() Scheduler {
	return &defaultScheduler{params: NewDefaultParams()}
}

// NewSchedulerWithParams creates a scheduler with custom parameters.
func NewSchedulerWithParams(params *Params) Scheduler {
	return &defaultScheduler{params: params}
}

// Schedule implements the Scheduler interface.
func (s *defaultScheduler) Schedule(
	card *domain.Card,
	quality domain.AnswerQuality,
	now time.Time,
) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !quality.IsValid() {
		return nil, ErrInvalidQuality
	}

	return scheduleCard(card, quality, now, s.params), nil
}
