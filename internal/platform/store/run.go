package store

import (
	"context"
	"time"

	perr "scopetrack/internal/platform/errors"
)

// lockSQL takes a transaction scoped advisory lock on a text key
// the lock is released on commit or rollback
const lockSQL = "SELECT pg_advisory_xact_lock(hashtext($1))"

// LockedAttempts bounds RunLocked retries on serialization and deadlock failures
const LockedAttempts = 3

var lockedBackoff = 25 * time.Millisecond

// RunLocked runs fn in a transaction that holds the advisory lock for key
// concurrent callers with the same key are serialized; transient failures rerun the whole tx
func RunLocked(ctx context.Context, tx TxRunner, key string, fn func(ctx context.Context, q RowQuerier) error) error {
	var err error
	for attempt := 1; attempt <= LockedAttempts; attempt++ {
		err = tx.Tx(ctx, func(q RowQuerier) error {
			if _, err := q.Exec(ctx, lockSQL, key); err != nil {
				return err
			}
			return fn(ctx, q)
		})
		if err == nil || !perr.IsRetryable(err) || attempt == LockedAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * lockedBackoff):
		}
	}
	return err
}
