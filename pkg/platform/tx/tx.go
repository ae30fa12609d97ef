// Package tx threads a SQL transaction through context so stores can join a
// caller-scoped transaction without changing their signatures. The registration
// orchestrator opens one transaction per registration and every dependent write
// joins it through From.
package tx

import (
	"context"
	"database/sql"
)

type ctxKey struct{}

var txKey = ctxKey{}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present. Stores fall back to
// their pooled connection when no transaction is active.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}
