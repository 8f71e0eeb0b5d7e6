// Package repo provides the scope store backends
package repo

import (
	"context"
	"encoding/json"
	"errors"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/modkit/repokit"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/platform/store"
)

// Schema creates the postgres table behind the pg backend
const Schema = `
create table if not exists project_scopes (
	project_key text primary key,
	items       jsonb not null,
	item_count  int not null,
	updated_at  timestamptz not null default now()
)`

// Repo is the minimal sql surface for scopes
type Repo interface {
	Upsert(ctx context.Context, key string, items []byte, count int) error
	Items(ctx context.Context, key string) ([]byte, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Upsert(ctx context.Context, key string, items []byte, count int) error {
	const sql = `
insert into project_scopes (project_key, items, item_count, updated_at)
values ($1, $2::jsonb, $3, now())
on conflict (project_key) do update
set items = excluded.items, item_count = excluded.item_count, updated_at = excluded.updated_at
`
	return store.ExecOne(ctx, r.q, sql, key, string(items), count)
}

func (r *queries) Items(ctx context.Context, key string) ([]byte, error) {
	const sql = `select items::text from project_scopes where project_key = $1`
	s, err := store.One(ctx, r.q, func(row store.Row) (string, error) {
		var s string
		return s, row.Scan(&s)
	}, sql, key)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// EnsureSchema creates the table when missing
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, Schema)
	return perr.FromPostgres(err, perr.ErrorCodePersistence, "create project_scopes")
}

// PGStore is the postgres scope store; writers to one key are serialized with an advisory lock
type PGStore struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
}

// NewPGStore constructs the pg backend
func NewPGStore(db repokit.TxRunner, binder repokit.Binder[Repo]) *PGStore {
	if db == nil {
		panic("scopes.PGStore requires a non nil TxRunner")
	}
	if binder == nil {
		panic("scopes.PGStore requires a non nil Repo binder")
	}
	return &PGStore{db: db, binder: binder}
}

// Save replaces the project's checklist
func (s *PGStore) Save(ctx context.Context, key string, c checklist.Checklist) error {
	b, err := json.Marshal(c)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodePersistence, "encode scope")
	}
	err = store.RunLocked(ctx, s.db, "scopes:"+key, func(ctx context.Context, q store.RowQuerier) error {
		return repokit.MustBind(s.binder, q).Upsert(ctx, key, b, c.Len())
	})
	return pgErr(ctx, err, "save scope "+key)
}

// Load reads the project's checklist; unknown keys are empty
func (s *PGStore) Load(ctx context.Context, key string) (checklist.Checklist, error) {
	b, err := repokit.MustBind(s.binder, s.db).Items(ctx, key)
	if errors.Is(err, perr.ErrNotFound) {
		return checklist.Checklist{}, nil
	}
	if err != nil {
		return checklist.Checklist{}, pgErr(ctx, err, "load scope "+key)
	}
	var c checklist.Checklist
	if err := json.Unmarshal(b, &c); err != nil {
		return checklist.Checklist{}, perr.Wrapf(err, perr.ErrorCodePersistence, "corrupt scope row for %s", key)
	}
	return c, nil
}

// pgErr classifies a store failure; a dead request context is Unavailable
func pgErr(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, msg)
	}
	return perr.FromPostgres(err, perr.ErrorCodePersistence, msg)
}
