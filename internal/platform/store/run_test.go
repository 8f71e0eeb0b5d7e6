package store

import (
	"context"
	"errors"
	"testing"
)

type recTx struct {
	fakeTxNoPing
	execs []string
	args  [][]any
	err   error
}

func (r *recTx) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	r.execs = append(r.execs, sql)
	r.args = append(r.args, args)
	return nil, r.err
}

func (r *recTx) Tx(_ context.Context, fn func(q RowQuerier) error) error { return fn(r) }

func TestRunLocked_LocksBeforeWork(t *testing.T) {
	t.Parallel()

	tx := &recTx{}
	err := RunLocked(context.Background(), tx, "main_st", func(ctx context.Context, q RowQuerier) error {
		_, err := q.Exec(ctx, "UPDATE x")
		return err
	})
	if err != nil {
		t.Fatalf("RunLocked: %v", err)
	}
	if len(tx.execs) != 2 || tx.execs[0] != lockSQL || tx.execs[1] != "UPDATE x" {
		t.Fatalf("execs = %v", tx.execs)
	}
	if tx.args[0][0] != "main_st" {
		t.Fatalf("lock key = %v", tx.args[0])
	}
}

func TestRunLocked_LockErrorSkipsWork(t *testing.T) {
	t.Parallel()

	tx := &recTx{err: errors.New("lock timeout")}
	called := false
	err := RunLocked(context.Background(), tx, "k", func(context.Context, RowQuerier) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("err=%v called=%v", err, called)
	}
}

func TestRunLocked_RetriesTransientFailures(t *testing.T) {
	t.Parallel()

	tx := &recTx{}
	calls := 0
	err := RunLocked(context.Background(), tx, "k", func(context.Context, RowQuerier) error {
		calls++
		if calls < 2 {
			return errors.New("ERROR: deadlock detected")
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RunLocked(context.Background(), tx, "k", func(context.Context, RowQuerier) error {
		calls++
		return errors.New("could not serialize access due to concurrent update")
	})
	if err == nil || calls != LockedAttempts {
		t.Fatalf("err=%v calls=%d, want %d attempts", err, calls, LockedAttempts)
	}
}
