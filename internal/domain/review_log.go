package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// AnswerQuality represents the learner's self-graded answer to a card.
type AnswerQuality string

// Possible answer quality values. Again is the sole incorrect grade; the
// other three are correct answers of increasing confidence.
const (
	QualityAgain AnswerQuality = "again"
	QualityHard  AnswerQuality = "hard"
	QualityGood  AnswerQuality = "good"
	QualityEasy  AnswerQuality = "easy"
)

// IsValid reports whether the quality is within its defined domain.
func (q AnswerQuality) IsValid() bool {
	switch q {
	case QualityAgain, QualityHard, QualityGood, QualityEasy:
		return true
	default:
		return false
	}
}

// Correct reports whether the quality counts as a correct answer for
// success-rate purposes.
func (q AnswerQuality) Correct() bool {
	return q.IsValid() && q != QualityAgain
}

// ReviewLog validation errors
var (
	ErrReviewLogIDEmpty     = errors.New("review log ID cannot be empty")
	ErrReviewLogCardIDEmpty = errors.New("review log card ID cannot be empty")
)

// ReviewLog records one submitted answer. Logs are append-only and feed
// the streak and success-rate aggregation; they are never updated.
type ReviewLog struct {
	ID         uuid.UUID     `json:"id"`
	CardID     uuid.UUID     `json:"card_id"`
	Quality    AnswerQuality `json:"quality"`
	Correct    bool          `json:"correct"`
	AnsweredAt time.Time     `json:"answered_at"`
}

// NewReviewLog creates a log entry for an answer submitted at the given time.
func NewReviewLog(cardID uuid.UUID, quality AnswerQuality, answeredAt time.Time) (*ReviewLog, error) {
	log := &ReviewLog{
		ID:         uuid.New(),
		CardID:     cardID,
		Quality:    quality,
		Correct:    quality.Correct(),
		AnsweredAt: answeredAt,
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the ReviewLog has valid data.
func (l *ReviewLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrReviewLogIDEmpty
	}
	if l.CardID == uuid.Nil {
		return ErrReviewLogCardIDEmpty
	}
	if !l.Quality.IsValid() {
		return ErrInvalidQuality
	}
	return nil
}
