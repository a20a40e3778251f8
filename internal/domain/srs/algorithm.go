package srs

import (
	"time"

	"github.com/voclab/trainer-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor based on the
// answer quality. The ease factor represents the card's difficulty -
// higher values mean the card is easier and intervals grow faster. The
// result is clamped between params.MinEaseFactor and params.MaxEaseFactor.
func calculateNewEaseFactor(
	currentEF float64,
	quality domain.AnswerQuality,
	params *Params,
) float64 {
	adjustment := params.EaseFactorAdjustment[quality]
	newEF := currentEF + adjustment

	if newEF < params.MinEaseFactor {
		newEF = params.MinEaseFactor
	}
	if newEF > params.MaxEaseFactor {
		newEF = params.MaxEaseFactor
	}

	return newEF
}

// calculateNewInterval determines the new interval in days based on the
// answer quality and current scheduling state.
//
// Algorithm behavior:
//   - "Again": resets the interval to 0 (review in minutes, not days)
//   - First reviews (interval 0): uses predefined intervals from params
//   - After a lapse (consecutiveCorrect 0 but interval > 0): uses a 1.5
//     multiplier for "good" instead of the full ease factor
//   - Normal "good": multiplies the interval by the ease factor
//   - "Hard": uses the smaller configured multiplier
//   - "Easy": uses the larger configured multiplier times the ease factor
//
// This is an SM-2 variant with modified lapse handling.
func calculateNewInterval(
	currentInterval int,
	consecutiveCorrect int,
	easeFactor float64,
	quality domain.AnswerQuality,
	params *Params,
) int {
	if quality == domain.QualityAgain {
		return 0
	}

	if currentInterval == 0 {
		return params.FirstReviewIntervals[quality]
	}

	if consecutiveCorrect == 0 && quality == domain.QualityGood {
		return int(float64(currentInterval) * 1.5)
	}

	var modifier float64
	if quality == domain.QualityGood {
		modifier = easeFactor
	} else {
		modifier = params.IntervalModifier[quality]
		if quality == domain.QualityEasy {
			modifier *= easeFactor
		}
	}

	return int(float64(currentInterval) * modifier)
}

// calculateNextDue converts the interval into the next due timestamp.
// "Again" answers come back after params.AgainReviewMinutes rather than
// in days, so failed cards are reseen within the same session.
func calculateNextDue(
	interval int,
	quality domain.AnswerQuality,
	now time.Time,
	params *Params,
) time.Time {
	if quality == domain.QualityAgain {
		return now.Add(time.Duration(params.AgainReviewMinutes) * time.Minute)
	}

	return now.AddDate(0, 0, interval)
}

// nextStatus advances the card status state machine.
//
// The machine is new -> learning -> review -> mastered. Any incorrect
// answer at any state lands on learning, never back on new. Promotions
// depend on the consecutive-correct streak carried in the new state and,
// for mastered, on the interval having grown past the configured floor.
func nextStatus(
	current domain.CardStatus,
	consecutiveCorrect int,
	intervalDays int,
	quality domain.AnswerQuality,
	params *Params,
) domain.CardStatus {
	if quality == domain.QualityAgain {
		return domain.StatusLearning
	}

	switch current {
	case domain.StatusNew:
		return domain.StatusLearning
	case domain.StatusLearning:
		if consecutiveCorrect >= params.PromoteToReviewAfter {
			return domain.StatusReview
		}
		return domain.StatusLearning
	case domain.StatusReview:
		if consecutiveCorrect >= params.PromoteToMasteredAfter &&
			intervalDays >= params.MasteredMinIntervalDays {
			return domain.StatusMastered
		}
		return domain.StatusReview
	case domain.StatusMastered:
		return domain.StatusMastered
	default:
		return domain.StatusLearning
	}
}

// scheduleCard creates a new card with updated scheduling state for the
// given answer. The input card is never modified; the caller persists the
// returned copy.
func scheduleCard(
	card *domain.Card,
	quality domain.AnswerQuality,
	now time.Time,
	params *Params,
) *domain.Card {
	next := card.Clone()

	next.ReviewCount++
	next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, quality, params)

	if quality == domain.QualityAgain {
		next.ConsecutiveCorrect = 0
	} else {
		next.ConsecutiveCorrect++
	}

	next.IntervalDays = calculateNewInterval(
		card.IntervalDays,
		card.ConsecutiveCorrect,
		next.EaseFactor,
		quality,
		params,
	)

	due := calculateNextDue(next.IntervalDays, quality, now, params)
	next.DueAt = &due

	next.Status = nextStatus(
		card.Status,
		next.ConsecutiveCorrect,
		next.IntervalDays,
		quality,
		params,
	)

	next.UpdatedAt = now

	return next
}
