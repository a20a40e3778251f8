package training

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
)

// Dashboard implements Service.Dashboard. The snapshot is recomputed from
// the card store and scope registry on every call; nothing is cached, so
// a toggle or answer is visible to the next read immediately.
func (s *service) Dashboard(ctx context.Context) (*domain.TrainingDashboard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	decks, err := s.scopes.ListDecks(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "dashboard", Message: "failed to list decks", Err: err}
	}

	categories, err := s.scopes.ListCategories(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "dashboard", Message: "failed to list categories", Err: err}
	}

	orphanActive, err := s.scopes.OrphanPoolActive(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "dashboard", Message: "failed to read orphan pool setting", Err: err}
	}

	cards, err := s.cards.ListAll(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "dashboard", Message: "failed to list cards", Err: err}
	}

	dashboard := &domain.TrainingDashboard{
		Decks:      make([]domain.ScopeSummary, 0, len(decks)),
		Categories: make([]domain.ScopeSummary, 0, len(categories)),
		Orphans:    domain.OrphanSummary{Active: orphanActive},
	}

	deckIndex := make(map[uuid.UUID]int, len(decks))
	activeDecks := make(map[uuid.UUID]bool, len(decks))
	for i, deck := range decks {
		deckIndex[deck.ID] = i
		activeDecks[deck.ID] = deck.LearningActive
		dashboard.Decks = append(dashboard.Decks, domain.ScopeSummary{
			ID:             deck.ID,
			Kind:           domain.ScopeDeck,
			Name:           deck.Name,
			LearningActive: deck.LearningActive,
		})
	}

	categoryIndex := make(map[uuid.UUID]int, len(categories))
	activeCategories := make(map[uuid.UUID]bool, len(categories))
	for i, category := range categories {
		categoryIndex[category.ID] = i
		activeCategories[category.ID] = category.LearningActive
		dashboard.Categories = append(dashboard.Categories, domain.ScopeSummary{
			ID:             category.ID,
			Kind:           domain.ScopeCategory,
			Name:           category.Name,
			LearningActive: category.LearningActive,
		})
	}

	totalDue := 0
	for _, card := range cards {
		due := card.IsDue(now)

		// A card counts into every grouping it belongs to; the distinct
		// global figure below never double-counts it.
		inActiveScope := false
		if card.DeckID != nil {
			if i, ok := deckIndex[*card.DeckID]; ok {
				dashboard.Decks[i].Cards.Add(card.Status)
				if due {
					dashboard.Decks[i].Due++
				}
				inActiveScope = inActiveScope || activeDecks[*card.DeckID]
			}
		}
		if card.CategoryID != nil {
			if i, ok := categoryIndex[*card.CategoryID]; ok {
				dashboard.Categories[i].Cards.Add(card.Status)
				if due {
					dashboard.Categories[i].Due++
				}
				inActiveScope = inActiveScope || activeCategories[*card.CategoryID]
			}
		}
		if card.IsOrphan() {
			dashboard.Orphans.Cards.Add(card.Status)
			if due {
				dashboard.Orphans.Due++
			}
			inActiveScope = inActiveScope || orphanActive
		}

		if due && inActiveScope {
			totalDue++
		}
	}
	dashboard.QuickStats.TotalDue = totalDue

	streak, rate, _, err := s.answerFigures(ctx, now, domain.PeriodMonth)
	if err != nil {
		return nil, err
	}
	dashboard.QuickStats.StreakDays = streak
	dashboard.QuickStats.SuccessRate = rate

	log.Debug("dashboard computed",
		slog.Int("decks", len(dashboard.Decks)),
		slog.Int("categories", len(dashboard.Categories)),
		slog.Int("total_due", totalDue))
	return dashboard, nil
}

// Stats implements Service.Stats.
func (s *service) Stats(ctx context.Context, period domain.StatsPeriod) (*domain.TrainingStats, error) {
	if !period.IsValid() {
		return nil, ErrInvalidPeriod
	}

	now := s.now()

	streak, rate, answerCount, err := s.answerFigures(ctx, now, period)
	if err != nil {
		return nil, err
	}

	cards, err := s.cards.ListAll(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "stats", Message: "failed to list cards", Err: err}
	}

	var byStatus domain.CardCounts
	for _, card := range cards {
		byStatus.Add(card.Status)
	}

	return &domain.TrainingStats{
		Period:        period,
		StreakDays:    streak,
		SuccessRate:   rate,
		AnswerCount:   answerCount,
		CardsByStatus: byStatus,
	}, nil
}

// answerFigures computes the streak (bounded by the configured horizon),
// the success rate over the trailing period and the number of answers in
// that period, all from one review-log scan.
func (s *service) answerFigures(
	ctx context.Context,
	now time.Time,
	period domain.StatsPeriod,
) (int, float64, int, error) {
	horizonStart := now.AddDate(0, 0, -s.cfg.StreakHorizonDays)

	fetchStart := horizonStart
	window := period.Window(now)
	if window.IsZero() || window.Before(horizonStart) {
		fetchStart = window
	}

	logs, err := s.logs.ListSince(ctx, fetchStart)
	if err != nil {
		return 0, 0, 0, &ServiceError{Operation: "stats", Message: "failed to list answer events", Err: err}
	}

	streak := streakDays(logs, now, s.loc)

	correct, total := 0, 0
	for _, entry := range logs {
		if !window.IsZero() && entry.AnsweredAt.Before(window) {
			continue
		}
		total++
		if entry.Correct {
			correct++
		}
	}

	rate := 0.0
	if total > 0 {
		rate = float64(correct) / float64(total)
	}

	return streak, rate, total, nil
}

// streakDays counts consecutive local-calendar days with at least one
// answer, ending today. A day without answers breaks the run, so a
// learner who has not trained today reports zero.
func streakDays(logs []*domain.ReviewLog, now time.Time, loc *time.Location) int {
	days := make(map[string]struct{}, len(logs))
	for _, entry := range logs {
		days[entry.AnsweredAt.In(loc).Format("2006-01-02")] = struct{}{}
	}

	streak := 0
	day := now.In(loc)
	for {
		if _, ok := days[day.Format("2006-01-02")]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
