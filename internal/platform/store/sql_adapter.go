package store

import (
	"context"
	"errors"
	"time"

	"scopetrack/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// sqlQuerier traces every statement it runs against db
type sqlQuerier struct {
	db     pgxQuerier
	tracer pg.QueryTracer
	slow   time.Duration
}

func (q sqlQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.db.Exec(ctx, sql, args...)
	q.done(ctx, sql, start, err)
	if err != nil {
		return nil, err
	}
	return ct, nil
}

// Query times the round trip to the first row; scanning is the caller's
func (q sqlQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.db.Query(ctx, sql, args...)
	q.done(ctx, sql, start, err)
	if err != nil {
		return nil, err
	}
	return pgRows{rs}, nil
}

// QueryRow traces once the row is scanned, since pgx defers errors to Scan
func (q sqlQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{
		row:  q.db.QueryRow(ctx, sql, args...),
		done: func(err error) { q.done(ctx, sql, start, err) },
	}
}

func (q sqlQuerier) done(ctx context.Context, sql string, start time.Time, err error) {
	if q.tracer == nil {
		return
	}
	elapsed := time.Since(start)
	q.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:     sql,
		Elapsed: elapsed,
		Err:     err,
		Slow:    q.slow > 0 && elapsed >= q.slow,
	})
}

// pgAdapter is the TxRunner over a pool
type pgAdapter struct {
	sqlQuerier
	p *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{sqlQuerier: sqlQuerier{db: p.Pool, tracer: p.Tracer, slow: p.Slow}, p: p}
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) (err error) {
	tx, err := a.p.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = fn(sqlQuerier{db: tx, tracer: a.tracer, slow: a.slow}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil || a.p == nil || a.p.Pool == nil {
		return errors.New("pg: not open")
	}
	return a.p.Pool.Ping(ctx)
}

func (a *pgAdapter) Close() error {
	a.p.Close()
	return nil
}

type pgRows struct{ pgx.Rows }

func (r pgRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

type tracedRow struct {
	row  pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.done(err)
	return err
}
