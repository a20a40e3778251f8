package srs

import (
	"github.com/voclab/trainer-api/internal/domain"
)

// Params defines all configurable parameters for the scheduling algorithm.
type Params struct {
	// Core limits
	MinEaseFactor float64
	MaxEaseFactor float64

	// Adjustments for different answer qualities
	EaseFactorAdjustment map[domain.AnswerQuality]float64
	IntervalModifier     map[domain.AnswerQuality]float64

	// Special case handling
	FirstReviewIntervals map[domain.AnswerQuality]int
	AgainReviewMinutes   int

	// Status promotion thresholds. A card is promoted from learning to
	// review after PromoteToReviewAfter consecutive correct answers, and
	// from review to mastered after PromoteToMasteredAfter consecutive
	// correct answers once its interval has reached MasteredMinIntervalDays.
	PromoteToReviewAfter    int
	PromoteToMasteredAfter  int
	MasteredMinIntervalDays int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MinEaseFactor: 1.3,
		MaxEaseFactor: 2.5,

		// Default ease factor adjustments
		EaseFactorAdjustment: map[domain.AnswerQuality]float64{
			domain.QualityAgain: -0.20,
			domain.QualityHard:  -0.15,
			domain.QualityGood:  0.0,
			domain.QualityEasy:  0.15,
		},

		// Default interval modifiers
		IntervalModifier: map[domain.AnswerQuality]float64{
			domain.QualityAgain: 0.0, // Reset interval
			domain.QualityHard:  1.2, // Slight increase
			domain.QualityGood:  1.0, // Use ease factor directly
			domain.QualityEasy:  1.3, // Significant increase
		},

		// Default first review intervals
		FirstReviewIntervals: map[domain.AnswerQuality]int{
			domain.QualityHard: 1,
			domain.QualityGood: 1,
			domain.QualityEasy: 2,
		},

		// Review again in 10 minutes
		AgainReviewMinutes: 10,

		PromoteToReviewAfter:    2,
		PromoteToMasteredAfter:  5,
		MasteredMinIntervalDays: 21,
	}
}
