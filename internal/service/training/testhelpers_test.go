package training

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/voclab/trainer-api/internal/config"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/domain/srs"
	"github.com/voclab/trainer-api/internal/store"
)

// memCardStore is an in-memory store.CardStore for service tests.
type memCardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]*domain.Card
}

func newMemCardStore() *memCardStore {
	return &memCardStore{cards: make(map[uuid.UUID]*domain.Card)}
}

func (m *memCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, card := range cards {
		for _, existing := range m.cards {
			if existing.WordID == card.WordID && existing.Type == card.Type {
				return store.ErrCardExists
			}
		}
	}
	for _, card := range cards {
		m.cards[card.ID] = card.Clone()
	}
	return nil
}

func (m *memCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	card, ok := m.cards[id]
	if !ok {
		return nil, store.ErrCardNotFound
	}
	return card.Clone(), nil
}

func (m *memCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	return m.GetByID(ctx, id)
}

func (m *memCardStore) Update(ctx context.Context, card *domain.Card) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.cards[card.ID]; !ok {
		return store.ErrCardNotFound
	}
	m.cards[card.ID] = card.Clone()
	return nil
}

func (m *memCardStore) ListByWordID(ctx context.Context, wordID uuid.UUID) ([]*domain.Card, error) {
	return m.list(func(c *domain.Card) bool { return c.WordID == wordID }), nil
}

func (m *memCardStore) DeleteByWordID(ctx context.Context, wordID uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, card := range m.cards {
		if card.WordID == wordID {
			delete(m.cards, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memCardStore) ListByScope(ctx context.Context, ref domain.ScopeRef) ([]*domain.Card, error) {
	return m.list(func(c *domain.Card) bool { return c.InScope(ref) }), nil
}

func (m *memCardStore) ListOrphans(ctx context.Context) ([]*domain.Card, error) {
	return m.list(func(c *domain.Card) bool { return c.IsOrphan() }), nil
}

func (m *memCardStore) ListAll(ctx context.Context) ([]*domain.Card, error) {
	return m.list(func(c *domain.Card) bool { return true }), nil
}

func (m *memCardStore) WithTx(tx *sql.Tx) store.CardStore { return m }

func (m *memCardStore) list(keep func(*domain.Card) bool) []*domain.Card {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Card
	for _, card := range m.cards {
		if keep(card) {
			out = append(out, card.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// memScopeStore is an in-memory store.ScopeStore for service tests.
type memScopeStore struct {
	mu           sync.Mutex
	decks        map[uuid.UUID]*domain.Deck
	categories   map[uuid.UUID]*domain.Category
	orphanActive bool
}

func newMemScopeStore() *memScopeStore {
	return &memScopeStore{
		decks:      make(map[uuid.UUID]*domain.Deck),
		categories: make(map[uuid.UUID]*domain.Category),
	}
}

func (m *memScopeStore) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *deck
	m.decks[deck.ID] = &copied
	return nil
}

func (m *memScopeStore) GetDeck(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deck, ok := m.decks[id]
	if !ok {
		return nil, store.ErrDeckNotFound
	}
	copied := *deck
	return &copied, nil
}

func (m *memScopeStore) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Deck, 0, len(m.decks))
	for _, deck := range m.decks {
		copied := *deck
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memScopeStore) DeleteDeck(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decks[id]; !ok {
		return store.ErrDeckNotFound
	}
	delete(m.decks, id)
	return nil
}

func (m *memScopeStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *category
	m.categories[category.ID] = &copied
	return nil
}

func (m *memScopeStore) GetCategory(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	category, ok := m.categories[id]
	if !ok {
		return nil, store.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (m *memScopeStore) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Category, 0, len(m.categories))
	for _, category := range m.categories {
		copied := *category
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memScopeStore) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return store.ErrCategoryNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *memScopeStore) SetLearningActive(ctx context.Context, ref domain.ScopeRef, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ref.Kind {
	case domain.ScopeDeck:
		deck, ok := m.decks[ref.ID]
		if !ok {
			return store.ErrDeckNotFound
		}
		deck.LearningActive = active
	case domain.ScopeCategory:
		category, ok := m.categories[ref.ID]
		if !ok {
			return store.ErrCategoryNotFound
		}
		category.LearningActive = active
	}
	return nil
}

func (m *memScopeStore) IsLearningActive(ctx context.Context, ref domain.ScopeRef) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch ref.Kind {
	case domain.ScopeDeck:
		deck, ok := m.decks[ref.ID]
		if !ok {
			return false, store.ErrDeckNotFound
		}
		return deck.LearningActive, nil
	case domain.ScopeCategory:
		category, ok := m.categories[ref.ID]
		if !ok {
			return false, store.ErrCategoryNotFound
		}
		return category.LearningActive, nil
	}
	return false, store.ErrNotFound
}

func (m *memScopeStore) OrphanPoolActive(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orphanActive, nil
}

func (m *memScopeStore) SetOrphanPoolActive(ctx context.Context, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orphanActive = active
	return nil
}

func (m *memScopeStore) WithTx(tx *sql.Tx) store.ScopeStore { return m }

// memReviewLogStore is an in-memory store.ReviewLogStore for service tests.
type memReviewLogStore struct {
	mu   sync.Mutex
	logs []*domain.ReviewLog
}

func newMemReviewLogStore() *memReviewLogStore {
	return &memReviewLogStore{}
}

func (m *memReviewLogStore) Create(ctx context.Context, log *domain.ReviewLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *log
	m.logs = append(m.logs, &copied)
	return nil
}

func (m *memReviewLogStore) ListSince(ctx context.Context, since time.Time) ([]*domain.ReviewLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.ReviewLog
	for _, entry := range m.logs {
		if !since.IsZero() && entry.AnsweredAt.Before(since) {
			continue
		}
		copied := *entry
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AnsweredAt.Before(out[j].AnsweredAt) })
	return out, nil
}

func (m *memReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore { return m }

// memTxRunner hands the in-memory stores straight to the callback; the
// transactional behavior itself is exercised by the postgres layer.
type memTxRunner struct {
	cards store.CardStore
	logs  store.ReviewLogStore
}

func (r *memTxRunner) InTx(
	ctx context.Context,
	fn func(ctx context.Context, cards store.CardStore, logs store.ReviewLogStore) error,
) error {
	return fn(ctx, r.cards, r.logs)
}

// testEnv bundles a fully wired service over in-memory stores.
type testEnv struct {
	cards  *memCardStore
	scopes *memScopeStore
	logs   *memReviewLogStore
	svc    Service
	now    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		cards:  newMemCardStore(),
		scopes: newMemScopeStore(),
		logs:   newMemReviewLogStore(),
		now:    time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	cfg := config.TrainingConfig{
		SecondsPerCard:    15,
		Timezone:          "UTC",
		StreakHorizonDays: 366,
	}

	svc, err := NewService(
		&memTxRunner{cards: env.cards, logs: env.logs},
		env.cards,
		env.scopes,
		env.logs,
		srs.NewDefaultScheduler(),
		cfg,
		nil,
		WithClock(func() time.Time { return env.now }),
	)
	require.NoError(t, err)

	env.svc = svc
	return env
}

// addDeck creates a deck directly in the scope store.
func (e *testEnv) addDeck(t *testing.T, name string, active bool) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(name, active)
	require.NoError(t, err)
	require.NoError(t, e.scopes.CreateDeck(context.Background(), deck))
	return deck
}

// addCategory creates a category directly in the scope store.
func (e *testEnv) addCategory(t *testing.T, name string, active bool) *domain.Category {
	t.Helper()
	category, err := domain.NewCategory(name, active)
	require.NoError(t, err)
	require.NoError(t, e.scopes.CreateCategory(context.Background(), category))
	return category
}

// addCard seeds a card in the given state. A nil due with a non-new
// status gets a due timestamp one hour in the past.
func (e *testEnv) addCard(
	t *testing.T,
	status domain.CardStatus,
	deckID, categoryID *uuid.UUID,
	due *time.Time,
) *domain.Card {
	t.Helper()

	if due == nil && status != domain.StatusNew {
		past := e.now.Add(-time.Hour)
		due = &past
	}

	card := &domain.Card{
		ID:         uuid.New(),
		WordID:     uuid.New(),
		Type:       domain.CardTypeNormal,
		Status:     status,
		DueAt:      due,
		DeckID:     deckID,
		CategoryID: categoryID,
		EaseFactor: 2.5,
		CreatedAt:  e.now.Add(-24 * time.Hour),
		UpdatedAt:  e.now.Add(-24 * time.Hour),
	}
	e.cards.cards[card.ID] = card
	return card
}

// logAnswer appends a review log entry directly.
func (e *testEnv) logAnswer(t *testing.T, quality domain.AnswerQuality, answeredAt time.Time) {
	t.Helper()
	entry, err := domain.NewReviewLog(uuid.New(), quality, answeredAt)
	require.NoError(t, err)
	require.NoError(t, e.logs.Create(context.Background(), entry))
}
