package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCardCounts(t *testing.T) {
	t.Parallel() // Enable parallel execution

	var counts CardCounts
	counts.Add(StatusNew)
	counts.Add(StatusNew)
	counts.Add(StatusLearning)
	counts.Add(StatusReview)
	counts.Add(StatusMastered)
	counts.Add("archived") // unknown statuses are ignored

	assert.Equal(t, 2, counts.New)
	assert.Equal(t, 1, counts.Learning)
	assert.Equal(t, 1, counts.Review)
	assert.Equal(t, 1, counts.Mastered)
	assert.Equal(t, 5, counts.Total())
}

func TestStatsPeriod(t *testing.T) {
	t.Parallel() // Enable parallel execution

	assert.True(t, PeriodDay.IsValid())
	assert.True(t, PeriodAll.IsValid())
	assert.False(t, StatsPeriod("year").IsValid())

	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.AddDate(0, 0, -1), PeriodDay.Window(now))
	assert.Equal(t, now.AddDate(0, 0, -7), PeriodWeek.Window(now))
	assert.Equal(t, now.AddDate(0, -1, 0), PeriodMonth.Window(now))
	assert.True(t, PeriodAll.Window(now).IsZero(), "all-time window is unbounded")
}
