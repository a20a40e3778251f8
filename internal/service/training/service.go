// Package training implements the training orchestration layer: scope
// activation, dashboard aggregation, session building and answer
// processing. The spaced-repetition formula itself lives behind the
// srs.Scheduler interface and is opaque to this package.
package training

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/voclab/trainer-api/internal/config"
	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/domain/srs"
	"github.com/voclab/trainer-api/internal/store"
)

// Common error types for the training service
var (
	// ErrScopeNotFound indicates that the referenced deck or category does not exist.
	ErrScopeNotFound = errors.New("scope not found")

	// ErrCardNotFound indicates that the card does not exist.
	ErrCardNotFound = errors.New("card not found")

	// ErrInvalidScope indicates a malformed scope reference.
	ErrInvalidScope = errors.New("invalid scope reference")

	// ErrInvalidQuality indicates an answer quality outside its defined domain.
	ErrInvalidQuality = errors.New("invalid answer quality")

	// ErrInvalidPeriod indicates an unknown stats period.
	ErrInvalidPeriod = errors.New("invalid stats period")

	// ErrInvalidDuration indicates a negative session duration.
	ErrInvalidDuration = errors.New("session duration cannot be negative")

	// ErrConflict indicates the operation lost a race with a concurrent
	// mutation; the caller must re-read state before retrying.
	ErrConflict = errors.New("conflicting concurrent modification")
)

// SessionRequest describes one training round to build.
// A nil Scope means general training over all active scopes plus the
// orphan pool when it is active; a non-nil Scope overrides activation
// gating for that deck or category. DurationMinutes zero means unlimited.
type SessionRequest struct {
	Scope           *domain.ScopeRef
	DurationMinutes int
	IncludeNew      bool
}

// Service is the training orchestration contract consumed by the API
// layer and by the external word CRUD collaborators.
type Service interface {
	// ActivateScope marks a deck or category as participating in general
	// training. Activating an already-active scope is a no-op success.
	// Returns ErrScopeNotFound if the scope does not exist.
	ActivateScope(ctx context.Context, ref domain.ScopeRef) error

	// DeactivateScope removes a deck or category from general training.
	// Idempotent; returns ErrScopeNotFound if the scope does not exist.
	DeactivateScope(ctx context.Context, ref domain.ScopeRef) error

	// ScopeActive reports the committed activation state of a scope.
	// Returns ErrScopeNotFound if the scope does not exist.
	ScopeActive(ctx context.Context, ref domain.ScopeRef) (bool, error)

	// SetOrphanPoolActive sets the single global flag deciding whether
	// orphan words participate in general training.
	SetOrphanPoolActive(ctx context.Context, active bool) error

	// Dashboard recomputes the training dashboard snapshot. Pure read,
	// safely retryable; two calls without intervening mutations return
	// identical results.
	Dashboard(ctx context.Context) (*domain.TrainingDashboard, error)

	// Stats returns streak, success rate and status totals for the
	// trailing period. Returns ErrInvalidPeriod for unknown periods.
	Stats(ctx context.Context, period domain.StatsPeriod) (*domain.TrainingStats, error)

	// BuildSession selects and orders a bounded queue of cards to review.
	// An empty queue is a valid result, not an error.
	// Returns ErrScopeNotFound if the request names a nonexistent scope.
	BuildSession(ctx context.Context, req SessionRequest) (*domain.TrainingSession, error)

	// SubmitAnswer applies a learner's response to a card through the
	// scheduler, persists the new card state and records the answer
	// event. Not safely blind-retried after a timeout of unknown outcome;
	// reconcile by re-reading the card instead.
	// Returns ErrCardNotFound or ErrInvalidQuality for caller errors.
	SubmitAnswer(ctx context.Context, cardID uuid.UUID, quality domain.AnswerQuality) (*domain.Card, error)

	// OnWordCreated creates the card for a newly created word. Words of
	// the empty type produce no card and return an empty slice.
	OnWordCreated(ctx context.Context, word domain.Word) ([]*domain.Card, error)

	// OnWordDeleted removes all cards of a deleted word. Deleting a word
	// without cards is not an error.
	OnWordDeleted(ctx context.Context, wordID uuid.UUID) error

	// CardsForWord returns the cards of a word for UI display.
	CardsForWord(ctx context.Context, wordID uuid.UUID) ([]*domain.Card, error)
}

// TxRunner executes a function against transaction-bound card and review
// log stores. The production implementation wraps store.RunInTransaction;
// tests substitute an in-memory runner.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context, cards store.CardStore, logs store.ReviewLogStore) error) error
}

// ServiceError wraps errors from the training service with additional context.
// This allows consumers to differentiate between different types of service
// errors using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "build_session", "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Verify interface compliance at compile time
var _ Service = (*service)(nil)

// service implements the Service interface.
type service struct {
	tx        TxRunner
	cards     store.CardStore
	scopes    store.ScopeStore
	logs      store.ReviewLogStore
	scheduler srs.Scheduler
	cfg       config.TrainingConfig
	loc       *time.Location
	now       func() time.Time
	logger    *slog.Logger
}

// Option customizes service construction.
type Option func(*service)

// WithClock overrides the time source. Used by tests for deterministic
// due-date and streak math.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewService creates the training service implementation.
func NewService(
	tx TxRunner,
	cards store.CardStore,
	scopes store.ScopeStore,
	logs store.ReviewLogStore,
	scheduler srs.Scheduler,
	cfg config.TrainingConfig,
	logger *slog.Logger,
	opts ...Option,
) (Service, error) {
	if tx == nil {
		return nil, errors.New("tx runner cannot be nil")
	}
	if cards == nil {
		return nil, errors.New("card store cannot be nil")
	}
	if scopes == nil {
		return nil, errors.New("scope store cannot be nil")
	}
	if logs == nil {
		return nil, errors.New("review log store cannot be nil")
	}
	if scheduler == nil {
		return nil, errors.New("scheduler cannot be nil")
	}
	if cfg.SecondsPerCard <= 0 {
		return nil, errors.New("seconds per card must be positive")
	}
	if logger == nil {
		logger = slog.Default()
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid training timezone %q: %w", cfg.Timezone, err)
		}
	}

	svc := &service{
		tx:        tx,
		cards:     cards,
		scopes:    scopes,
		logs:      logs,
		scheduler: scheduler,
		cfg:       cfg,
		loc:       loc,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    logger.With(slog.String("component", "training_service")),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// mapScopeErr converts store-level not-found errors into the service
// sentinel so handlers only deal with one vocabulary.
func mapScopeErr(err error) error {
	if store.IsNotFoundError(err) {
		return ErrScopeNotFound
	}
	return err
}
