package store

import (
	"context"
	"errors"
	"testing"

	perr "scopetrack/internal/platform/errors"
)

type fakeTag int64

func (f fakeTag) String() string      { return "UPDATE" }
func (f fakeTag) RowsAffected() int64 { return int64(f) }

// sliceRows iterates string rows
type sliceRows struct {
	data   []string
	idx    int
	err    error
	closed bool
}

func newSliceRows(vals ...string) *sliceRows { return &sliceRows{data: vals, idx: -1} }

func (r *sliceRows) Next() bool {
	if r.err != nil {
		return false
	}
	r.idx++
	return r.idx < len(r.data)
}
func (r *sliceRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.data[r.idx]
	return nil
}
func (r *sliceRows) Err() error        { return r.err }
func (r *sliceRows) Close()            { r.closed = true }
func (r *sliceRows) Columns() []string { return []string{"v"} }

type valRow struct{ v string }

func (r valRow) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.v
	return nil
}

type fakeQuerier struct {
	tag     CommandTag
	execErr error
	rows    Rows
	qErr    error
	row     Row
}

func (f *fakeQuerier) Exec(context.Context, string, ...any) (CommandTag, error) {
	return f.tag, f.execErr
}
func (f *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) { return f.rows, f.qErr }
func (f *fakeQuerier) QueryRow(context.Context, string, ...any) Row        { return f.row }

func scanString(r Row) (string, error) {
	var s string
	err := r.Scan(&s)
	return s, err
}

func TestExecOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag(1)}, "UPDATE"); err != nil {
		t.Fatalf("one row: %v", err)
	}
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag(0)}, "UPDATE"); err == nil {
		t.Fatal("zero rows should fail")
	}
	if err := ExecOne(ctx, &fakeQuerier{tag: fakeTag(11)}, "UPDATE"); err == nil {
		t.Fatal("eleven rows should fail")
	}
	boom := errors.New("boom")
	if err := ExecOne(ctx, &fakeQuerier{execErr: boom}, "UPDATE"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestScalar(t *testing.T) {
	t.Parallel()

	got, err := Scalar[string](context.Background(), &fakeQuerier{row: valRow{"ok"}}, "SELECT")
	if err != nil || got != "ok" {
		t.Fatalf("Scalar = %q, %v", got, err)
	}
}

func TestOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	got, err := One(ctx, &fakeQuerier{rows: newSliceRows("a")}, scanString, "SELECT")
	if err != nil || got != "a" {
		t.Fatalf("One = %q, %v", got, err)
	}

	_, err = One(ctx, &fakeQuerier{rows: newSliceRows()}, scanString, "SELECT")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("empty = %v", err)
	}

	_, err = One(ctx, &fakeQuerier{rows: newSliceRows("a", "b")}, scanString, "SELECT")
	if err == nil {
		t.Fatal("two rows should fail")
	}

	iterErr := errors.New("iter")
	_, err = One(ctx, &fakeQuerier{rows: &sliceRows{idx: -1, err: iterErr}}, scanString, "SELECT")
	if !errors.Is(err, iterErr) {
		t.Fatalf("iterator err = %v", err)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()

	rows := newSliceRows("a", "b", "c")
	got, err := Collect(rows, scanString)
	if err != nil || len(got) != 3 || got[2] != "c" || !rows.closed {
		t.Fatalf("Collect = %v, %v closed=%v", got, err, rows.closed)
	}

	empty, err := Collect(newSliceRows(), scanString)
	if err != nil || len(empty) != 0 {
		t.Fatalf("Collect empty = %v, %v", empty, err)
	}

	iterErr := errors.New("iter")
	if _, err := Collect(&sliceRows{idx: -1, err: iterErr}, scanString); !errors.Is(err, iterErr) {
		t.Fatalf("iterator err = %v", err)
	}
}
