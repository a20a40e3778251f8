package training

import (
	"context"
	"database/sql"

	"github.com/voclab/trainer-api/internal/store"
)

// sqlTxRunner is the production TxRunner: it opens a database transaction
// and hands transaction-bound store instances to the callback.
type sqlTxRunner struct {
	db    *sql.DB
	cards store.CardStore
	logs  store.ReviewLogStore
}

// NewSQLTxRunner creates a TxRunner over the given database connection
// and base stores.
func NewSQLTxRunner(db *sql.DB, cards store.CardStore, logs store.ReviewLogStore) TxRunner {
	return &sqlTxRunner{db: db, cards: cards, logs: logs}
}

// InTx implements TxRunner.
func (r *sqlTxRunner) InTx(
	ctx context.Context,
	fn func(ctx context.Context, cards store.CardStore, logs store.ReviewLogStore) error,
) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, r.cards.WithTx(tx), r.logs.WithTx(tx))
	})
}
