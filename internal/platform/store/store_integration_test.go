//go:build integration_pg

package store

import (
	"context"
	"io"
	"sync"
	"testing"

	"scopetrack/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func openTestPG(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{
		AppName: "scopetrack-store-it",
		PG:      PGConfig{Enabled: true, URL: testkit.Postgres(t), MaxConns: 8, LogSQL: true},
	}, WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })
	return s
}

func TestIntegration_GuardAndTx(t *testing.T) {
	s := openTestPG(t)
	ctx := context.Background()

	if err := s.Guard(ctx); err != nil {
		t.Fatalf("Guard: %v", err)
	}
	if _, err := s.PG.Exec(ctx, `CREATE TABLE counters (k text primary key, n int not null)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ExecOne(ctx, s.PG, `INSERT INTO counters VALUES ('a', 0)`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	// a failing tx rolls back
	_ = s.PG.Tx(ctx, func(q RowQuerier) error {
		_, _ = q.Exec(ctx, `UPDATE counters SET n = 100 WHERE k = 'a'`)
		return io.ErrUnexpectedEOF
	})
	if n, err := Scalar[int](ctx, s.PG, `SELECT n FROM counters WHERE k = 'a'`); err != nil || n != 0 {
		t.Fatalf("after rollback n=%d err=%v", n, err)
	}
}

func TestIntegration_RunLockedSerializes(t *testing.T) {
	s := openTestPG(t)
	ctx := context.Background()

	if _, err := s.PG.Exec(ctx, `CREATE TABLE tally (k text primary key, n int not null)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.PG.Exec(ctx, `INSERT INTO tally VALUES ('main_st', 0)`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// read-modify-write without the lock would lose updates
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := RunLocked(ctx, s.PG, "main_st", func(ctx context.Context, q RowQuerier) error {
				n, err := Scalar[int](ctx, q, `SELECT n FROM tally WHERE k = 'main_st'`)
				if err != nil {
					return err
				}
				return ExecOne(ctx, q, `UPDATE tally SET n = $1 WHERE k = 'main_st'`, n+1)
			})
			if err != nil {
				t.Errorf("RunLocked: %v", err)
			}
		}()
	}
	wg.Wait()

	n, err := Scalar[int](ctx, s.PG, `SELECT n FROM tally WHERE k = 'main_st'`)
	if err != nil || n != 8 {
		t.Fatalf("n=%d err=%v", n, err)
	}
}
