package srs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voclab/trainer-api/internal/domain"
)

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name      string
		currentEF float64
		quality   domain.AnswerQuality
		expected  float64
	}{
		{
			name:      "Again lowers the ease factor",
			currentEF: 2.5,
			quality:   domain.QualityAgain,
			expected:  2.3,
		},
		{
			name:      "Hard lowers the ease factor slightly less",
			currentEF: 2.5,
			quality:   domain.QualityHard,
			expected:  2.35,
		},
		{
			name:      "Good keeps the ease factor",
			currentEF: 2.0,
			quality:   domain.QualityGood,
			expected:  2.0,
		},
		{
			name:      "Easy raises the ease factor",
			currentEF: 2.0,
			quality:   domain.QualityEasy,
			expected:  2.15,
		},
		{
			name:      "Clamped at the minimum",
			currentEF: 1.35,
			quality:   domain.QualityAgain,
			expected:  1.3,
		},
		{
			name:      "Clamped at the maximum",
			currentEF: 2.5,
			quality:   domain.QualityEasy,
			expected:  2.5,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calculateNewEaseFactor(tc.currentEF, tc.quality, params)
			assert.InDelta(t, tc.expected, got, 0.0001)
		})
	}
}

func TestCalculateNewInterval(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name               string
		currentInterval    int
		consecutiveCorrect int
		easeFactor         float64
		quality            domain.AnswerQuality
		expected           int
	}{
		{
			name:            "Again resets the interval",
			currentInterval: 10,
			easeFactor:      2.5,
			quality:         domain.QualityAgain,
			expected:        0,
		},
		{
			name:            "First review with good uses the configured interval",
			currentInterval: 0,
			easeFactor:      2.5,
			quality:         domain.QualityGood,
			expected:        1,
		},
		{
			name:            "First review with easy uses the longer interval",
			currentInterval: 0,
			easeFactor:      2.5,
			quality:         domain.QualityEasy,
			expected:        2,
		},
		{
			name:               "Good after a lapse uses the reduced multiplier",
			currentInterval:    10,
			consecutiveCorrect: 0,
			easeFactor:         2.5,
			quality:            domain.QualityGood,
			expected:           15,
		},
		{
			name:               "Good multiplies by the ease factor",
			currentInterval:    10,
			consecutiveCorrect: 3,
			easeFactor:         2.5,
			quality:            domain.QualityGood,
			expected:           25,
		},
		{
			name:               "Hard grows the interval slowly",
			currentInterval:    10,
			consecutiveCorrect: 3,
			easeFactor:         2.5,
			quality:            domain.QualityHard,
			expected:           12,
		},
		{
			name:               "Easy grows the interval fastest",
			currentInterval:    10,
			consecutiveCorrect: 3,
			easeFactor:         2.0,
			quality:            domain.QualityEasy,
			expected:           26,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := calculateNewInterval(
				tc.currentInterval,
				tc.consecutiveCorrect,
				tc.easeFactor,
				tc.quality,
				params,
			)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNextStatus(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name               string
		current            domain.CardStatus
		consecutiveCorrect int
		intervalDays       int
		quality            domain.AnswerQuality
		expected           domain.CardStatus
	}{
		{
			name:     "New card answered correctly enters learning",
			current:  domain.StatusNew,
			quality:  domain.QualityGood,
			expected: domain.StatusLearning,
		},
		{
			name:     "New card answered again still enters learning",
			current:  domain.StatusNew,
			quality:  domain.QualityAgain,
			expected: domain.StatusLearning,
		},
		{
			name:               "Learning card below threshold stays learning",
			current:            domain.StatusLearning,
			consecutiveCorrect: 1,
			quality:            domain.QualityGood,
			expected:           domain.StatusLearning,
		},
		{
			name:               "Learning card at threshold promotes to review",
			current:            domain.StatusLearning,
			consecutiveCorrect: 2,
			quality:            domain.QualityGood,
			expected:           domain.StatusReview,
		},
		{
			name:               "Review card below streak stays review",
			current:            domain.StatusReview,
			consecutiveCorrect: 4,
			intervalDays:       30,
			quality:            domain.QualityGood,
			expected:           domain.StatusReview,
		},
		{
			name:               "Review card with short interval stays review",
			current:            domain.StatusReview,
			consecutiveCorrect: 5,
			intervalDays:       10,
			quality:            domain.QualityGood,
			expected:           domain.StatusReview,
		},
		{
			name:               "Review card past both thresholds promotes to mastered",
			current:            domain.StatusReview,
			consecutiveCorrect: 5,
			intervalDays:       21,
			quality:            domain.QualityGood,
			expected:           domain.StatusMastered,
		},
		{
			name:     "Review card answered again demotes to learning",
			current:  domain.StatusReview,
			quality:  domain.QualityAgain,
			expected: domain.StatusLearning,
		},
		{
			name:     "Mastered card answered again demotes to learning",
			current:  domain.StatusMastered,
			quality:  domain.QualityAgain,
			expected: domain.StatusLearning,
		},
		{
			name:               "Mastered card answered correctly stays mastered",
			current:            domain.StatusMastered,
			consecutiveCorrect: 9,
			intervalDays:       60,
			quality:            domain.QualityGood,
			expected:           domain.StatusMastered,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := nextStatus(tc.current, tc.consecutiveCorrect, tc.intervalDays, tc.quality, params)
			assert.Equal(t, tc.expected, got)
		})
	}
}
