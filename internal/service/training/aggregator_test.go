package training

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voclab/trainer-api/internal/domain"
)

func TestDashboardEmpty(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)

	dashboard, err := env.svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Empty(t, dashboard.Decks)
	assert.Empty(t, dashboard.Categories)
	assert.False(t, dashboard.Orphans.Active)
	assert.Equal(t, 0, dashboard.Orphans.Cards.Total())
	assert.Equal(t, 0, dashboard.QuickStats.TotalDue)
	assert.Equal(t, 0, dashboard.QuickStats.StreakDays)
	assert.Equal(t, 0.0, dashboard.QuickStats.SuccessRate)
}

func TestDashboardCountsPerScope(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	deckA := env.addDeck(t, "Deck A", true)
	deckB := env.addDeck(t, "Deck B", false)
	category := env.addCategory(t, "Food", true)

	env.addCard(t, domain.StatusNew, &deckA.ID, nil, nil)
	env.addCard(t, domain.StatusLearning, &deckA.ID, nil, nil) // due (past)
	env.addCard(t, domain.StatusReview, &deckB.ID, nil, nil)   // due but deck inactive
	env.addCard(t, domain.StatusMastered, nil, &category.ID, nil)

	dashboard, err := env.svc.Dashboard(ctx)
	require.NoError(t, err)

	require.Len(t, dashboard.Decks, 2)
	require.Len(t, dashboard.Categories, 1)

	// ListDecks orders by name, so Deck A comes first.
	assert.Equal(t, deckA.ID, dashboard.Decks[0].ID)
	assert.Equal(t, 1, dashboard.Decks[0].Cards.New)
	assert.Equal(t, 1, dashboard.Decks[0].Cards.Learning)
	assert.Equal(t, 2, dashboard.Decks[0].Cards.Total())
	assert.Equal(t, 1, dashboard.Decks[0].Due)
	assert.True(t, dashboard.Decks[0].LearningActive)

	assert.Equal(t, deckB.ID, dashboard.Decks[1].ID)
	assert.Equal(t, 1, dashboard.Decks[1].Due,
		"inactive decks still report their own backlog")
	assert.False(t, dashboard.Decks[1].LearningActive)

	assert.Equal(t, 1, dashboard.Categories[0].Cards.Mastered)
	assert.Equal(t, 1, dashboard.Categories[0].Due)

	// Global due only counts cards in active scopes: the learning card in
	// Deck A and the mastered card in the active category. Deck B's card is
	// excluded.
	assert.Equal(t, 2, dashboard.QuickStats.TotalDue)
}

func TestDashboardDualMembershipCountsOnce(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	deck := env.addDeck(t, "Verbs", true)
	category := env.addCategory(t, "Travel", true)

	// One card belonging to both groupings.
	env.addCard(t, domain.StatusReview, &deck.ID, &category.ID, nil)

	dashboard, err := env.svc.Dashboard(ctx)
	require.NoError(t, err)

	// The card appears in each grouping it belongs to...
	assert.Equal(t, 1, dashboard.Decks[0].Cards.Total())
	assert.Equal(t, 1, dashboard.Categories[0].Cards.Total())
	assert.Equal(t, 1, dashboard.Decks[0].Due)
	assert.Equal(t, 1, dashboard.Categories[0].Due)

	// ...but the global figure counts it once.
	assert.Equal(t, 1, dashboard.QuickStats.TotalDue)
}

func TestDashboardOrphanGating(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	env.addCard(t, domain.StatusLearning, nil, nil, nil) // orphan, due

	dashboard, err := env.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Orphans.Due, "orphan backlog is always reported")
	assert.Equal(t, 0, dashboard.QuickStats.TotalDue,
		"inactive orphan pool contributes nothing to the global figure")

	require.NoError(t, env.svc.SetOrphanPoolActive(ctx, true))

	dashboard, err = env.svc.Dashboard(ctx)
	require.NoError(t, err)
	assert.True(t, dashboard.Orphans.Active)
	assert.Equal(t, 1, dashboard.QuickStats.TotalDue)
}

func TestDashboardIsIdempotent(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	deck := env.addDeck(t, "Verbs", true)
	env.addCard(t, domain.StatusReview, &deck.ID, nil, nil)
	env.logAnswer(t, domain.QualityGood, env.now.Add(-time.Hour))

	first, err := env.svc.Dashboard(ctx)
	require.NoError(t, err)
	second, err := env.svc.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second, "two reads without mutations must match")
}

func TestStatsSuccessRateAndCounts(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	deck := env.addDeck(t, "Verbs", true)
	env.addCard(t, domain.StatusNew, &deck.ID, nil, nil)
	env.addCard(t, domain.StatusReview, &deck.ID, nil, nil)

	// Three answers today: two correct, one again.
	env.logAnswer(t, domain.QualityGood, env.now.Add(-2*time.Hour))
	env.logAnswer(t, domain.QualityEasy, env.now.Add(-time.Hour))
	env.logAnswer(t, domain.QualityAgain, env.now.Add(-30*time.Minute))

	// One old answer outside the weekly window.
	env.logAnswer(t, domain.QualityAgain, env.now.AddDate(0, 0, -20))

	stats, err := env.svc.Stats(ctx, domain.PeriodWeek)
	require.NoError(t, err)

	assert.Equal(t, domain.PeriodWeek, stats.Period)
	assert.Equal(t, 3, stats.AnswerCount)
	assert.InDelta(t, 2.0/3.0, stats.SuccessRate, 0.0001)
	assert.Equal(t, 1, stats.CardsByStatus.New)
	assert.Equal(t, 1, stats.CardsByStatus.Review)

	all, err := env.svc.Stats(ctx, domain.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 4, all.AnswerCount)
	assert.InDelta(t, 0.5, all.SuccessRate, 0.0001)
}

func TestStatsInvalidPeriod(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)

	_, err := env.svc.Stats(context.Background(), "year")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestStreakCounting(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	// Answers today, yesterday and two days ago, then a gap.
	env.logAnswer(t, domain.QualityGood, env.now.Add(-time.Hour))
	env.logAnswer(t, domain.QualityAgain, env.now.AddDate(0, 0, -1))
	env.logAnswer(t, domain.QualityGood, env.now.AddDate(0, 0, -2))
	env.logAnswer(t, domain.QualityGood, env.now.AddDate(0, 0, -5))

	stats, err := env.svc.Stats(ctx, domain.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.StreakDays,
		"incorrect answers still count as training activity")
}

func TestStreakBrokenWithoutAnswerToday(t *testing.T) {
	t.Parallel() // Enable parallel execution
	env := newTestEnv(t)
	ctx := context.Background()

	env.logAnswer(t, domain.QualityGood, env.now.AddDate(0, 0, -1))
	env.logAnswer(t, domain.QualityGood, env.now.AddDate(0, 0, -2))

	stats, err := env.svc.Stats(ctx, domain.PeriodAll)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.StreakDays,
		"a learner who has not trained today reports zero")
}
