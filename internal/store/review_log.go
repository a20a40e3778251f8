package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/voclab/trainer-api/internal/domain"
)

// ReviewLogStore defines the interface for answer-event persistence.
// Logs are append-only; the aggregator derives streak and success-rate
// figures from them.
type ReviewLogStore interface {
	// Create appends one answer event.
	// Returns validation errors if the log data is invalid.
	Create(ctx context.Context, log *domain.ReviewLog) error

	// ListSince returns all answer events at or after the given time,
	// ordered by answer time ascending. A zero time returns everything.
	ListSince(ctx context.Context, since time.Time) ([]*domain.ReviewLog, error)

	// WithTx returns a new ReviewLogStore instance bound to the transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
