package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/voclab/trainer-api/internal/domain"
	"github.com/voclab/trainer-api/internal/platform/logger"
	"github.com/voclab/trainer-api/internal/store"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the
// ReviewLogStore interface. If logger is nil, a default logger will be used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// WithTx implements store.ReviewLogStore.WithTx
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ReviewLogStore.Create
func (s *PostgresReviewLogStore) Create(ctx context.Context, reviewLog *domain.ReviewLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reviewLog.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_logs (id, card_id, quality, correct, answered_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(ctx, query,
		reviewLog.ID, reviewLog.CardID, reviewLog.Quality, reviewLog.Correct, reviewLog.AnsweredAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: card %s", store.ErrCardNotFound, reviewLog.CardID)
		}
		log.Error("failed to create review log",
			slog.String("error", err.Error()),
			slog.String("card_id", reviewLog.CardID.String()))
		return mapConnectionError(err)
	}

	log.Debug("review log created",
		slog.String("card_id", reviewLog.CardID.String()),
		slog.String("quality", string(reviewLog.Quality)))
	return nil
}

// ListSince implements store.ReviewLogStore.ListSince
func (s *PostgresReviewLogStore) ListSince(ctx context.Context, since time.Time) ([]*domain.ReviewLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, card_id, quality, correct, answered_at
		FROM review_logs
		WHERE answered_at >= $1
		ORDER BY answered_at, id
	`
	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		log.Error("failed to query review logs", slog.String("error", err.Error()))
		return nil, mapConnectionError(err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var logs []*domain.ReviewLog
	for rows.Next() {
		var entry domain.ReviewLog
		var quality string
		if err := rows.Scan(&entry.ID, &entry.CardID, &quality, &entry.Correct, &entry.AnsweredAt); err != nil {
			return nil, err
		}
		entry.Quality = domain.AnswerQuality(quality)
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, mapConnectionError(err)
	}

	return logs, nil
}
