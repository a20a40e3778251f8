package training

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
)

// BuildSession implements Service.BuildSession.
//
// Selection: an explicit scope overrides activation gating; without one
// the eligible set is the distinct union of all active decks, all active
// categories and, when the pool flag is set, the orphan cards. Ordering:
// due cards first by ascending due time (oldest overdue first), then new
// cards in creation order. A nonzero duration truncates the queue to the
// estimated capacity; zero means unlimited.
func (s *service) BuildSession(ctx context.Context, req SessionRequest) (*domain.TrainingSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	if req.DurationMinutes < 0 {
		return nil, ErrInvalidDuration
	}

	eligible, err := s.eligibleCards(ctx, req.Scope)
	if err != nil {
		return nil, err
	}

	var due, fresh []*domain.Card
	for _, card := range eligible {
		switch {
		case card.IsDue(now):
			due = append(due, card)
		case card.Status == domain.StatusNew && req.IncludeNew:
			fresh = append(fresh, card)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		if !due[i].DueAt.Equal(*due[j].DueAt) {
			return due[i].DueAt.Before(*due[j].DueAt)
		}
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt.Before(fresh[j].CreatedAt)
	})

	queue := make([]*domain.Card, 0, len(due)+len(fresh))
	queue = append(queue, due...)
	queue = append(queue, fresh...)

	if req.DurationMinutes > 0 {
		capacity := req.DurationMinutes * 60 / s.cfg.SecondsPerCard
		if capacity < len(queue) {
			queue = queue[:capacity]
		}
	}

	log.Debug("session built",
		slog.Int("due", len(due)),
		slog.Int("new", len(fresh)),
		slog.Int("returned", len(queue)),
		slog.Int("duration_minutes", req.DurationMinutes))

	return &domain.TrainingSession{
		Cards:      queue,
		TotalCount: len(queue),
		BuiltAt:    now,
	}, nil
}

// eligibleCards resolves the card set a session may draw from.
func (s *service) eligibleCards(ctx context.Context, scope *domain.ScopeRef) ([]*domain.Card, error) {
	if scope != nil {
		if err := scope.Validate(); err != nil {
			return nil, ErrInvalidScope
		}

		// Verify the scope exists; an unknown scope is a caller error,
		// never an empty session.
		if _, err := s.ScopeActive(ctx, *scope); err != nil {
			return nil, err
		}

		cards, err := s.cards.ListByScope(ctx, *scope)
		if err != nil {
			return nil, &ServiceError{Operation: "build_session", Message: "failed to list scope cards", Err: err}
		}
		return cards, nil
	}

	decks, err := s.scopes.ListDecks(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "build_session", Message: "failed to list decks", Err: err}
	}

	categories, err := s.scopes.ListCategories(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "build_session", Message: "failed to list categories", Err: err}
	}

	orphanActive, err := s.scopes.OrphanPoolActive(ctx)
	if err != nil {
		return nil, &ServiceError{Operation: "build_session", Message: "failed to read orphan pool setting", Err: err}
	}

	seen := make(map[uuid.UUID]struct{})
	var eligible []*domain.Card

	appendCards := func(cards []*domain.Card) {
		for _, card := range cards {
			if _, ok := seen[card.ID]; ok {
				continue
			}
			seen[card.ID] = struct{}{}
			eligible = append(eligible, card)
		}
	}

	for _, deck := range decks {
		if !deck.LearningActive {
			continue
		}
		cards, err := s.cards.ListByScope(ctx, deck.Ref())
		if err != nil {
			return nil, &ServiceError{Operation: "build_session", Message: "failed to list deck cards", Err: err}
		}
		appendCards(cards)
	}

	for _, category := range categories {
		if !category.LearningActive {
			continue
		}
		cards, err := s.cards.ListByScope(ctx, category.Ref())
		if err != nil {
			return nil, &ServiceError{Operation: "build_session", Message: "failed to list category cards", Err: err}
		}
		appendCards(cards)
	}

	if orphanActive {
		cards, err := s.cards.ListOrphans(ctx)
		if err != nil {
			return nil, &ServiceError{Operation: "build_session", Message: "failed to list orphan cards", Err: err}
		}
		appendCards(cards)
	}

	return eligible, nil
}
