package store

import (
	"context"
	"fmt"

	perr "scopetrack/internal/platform/errors"
)

// ExecOne runs a write that must touch exactly one row
func ExecOne(ctx context.Context, q RowQuerier, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if n := tag.RowsAffected(); n != 1 {
		return fmt.Errorf("store: %d rows affected, want 1", n)
	}
	return nil
}

// Scalar scans the first column of the first row
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	err := q.QueryRow(ctx, sql, args...).Scan(&v)
	return v, err
}

// One returns the only row of the result; none is perr.ErrNotFound and more than one is an error
func One[T any](ctx context.Context, q RowQuerier, scan func(Row) (T, error), sql string, args ...any) (T, error) {
	var zero T
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return zero, err
	}
	items, err := collect(rows, scan, 2)
	switch {
	case err != nil:
		return zero, err
	case len(items) == 0:
		return zero, perr.ErrNotFound
	case len(items) > 1:
		return zero, fmt.Errorf("store: query returned more than one row")
	}
	return items[0], nil
}

// Collect maps every row with scan, then closes rows; it serves pg and clickhouse result sets alike
func Collect[T any](rows Rows, scan func(Row) (T, error)) ([]T, error) {
	return collect(rows, scan, -1)
}

// collect stops after limit rows when limit >= 0
func collect[T any](rows Rows, scan func(Row) (T, error), limit int) ([]T, error) {
	defer rows.Close()
	var out []T
	for (limit < 0 || len(out) < limit) && rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
