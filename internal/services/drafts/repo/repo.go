// Package repo provides the draft store backends
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"scopetrack/internal/modkit/repokit"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/platform/store"
	"scopetrack/internal/platform/store/fs"
	"scopetrack/internal/services/drafts/domain"
)

// FileSuffix names a project's draft file
const FileSuffix = "_draft.json"

// FS keeps one {key}_draft.json file per project
type FS struct{ files *fs.FS }

// NewFS returns a file backed draft store
func NewFS(files *fs.FS) *FS {
	if files == nil {
		panic("drafts.FS requires a non nil file store")
	}
	return &FS{files: files}
}

// Save overwrites the draft
func (s *FS) Save(ctx context.Context, d domain.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodePersistence, "encode draft")
	}
	return s.files.Put(ctx, d.ProjectID+FileSuffix, b)
}

// Load reads the draft; ok is false when none was saved
func (s *FS) Load(ctx context.Context, key string) (domain.Draft, bool, error) {
	b, ok, err := s.files.Get(ctx, key+FileSuffix)
	if err != nil || !ok {
		return domain.Draft{}, false, err
	}
	var d domain.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return domain.Draft{}, false, perr.Wrapf(err, perr.ErrorCodePersistence, "corrupt draft for %s", key)
	}
	return d, true, nil
}

// Schema creates the postgres table behind the pg backend
const Schema = `
create table if not exists project_drafts (
	project_key text primary key,
	fields      jsonb not null,
	updated_at  timestamptz not null
)`

// Repo is the minimal sql surface for drafts
type Repo interface {
	Upsert(ctx context.Context, key string, fields []byte, at time.Time) error
	Get(ctx context.Context, key string) (fields []byte, at time.Time, err error)
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

func (r *queries) Upsert(ctx context.Context, key string, fields []byte, at time.Time) error {
	const sql = `
insert into project_drafts (project_key, fields, updated_at)
values ($1, $2::jsonb, $3)
on conflict (project_key) do update
set fields = excluded.fields, updated_at = excluded.updated_at
`
	return store.ExecOne(ctx, r.q, sql, key, string(fields), at)
}

type draftRow struct {
	fields string
	at     time.Time
}

func (r *queries) Get(ctx context.Context, key string) ([]byte, time.Time, error) {
	const sql = `select fields::text, updated_at from project_drafts where project_key = $1`
	row, err := store.One(ctx, r.q, func(rw store.Row) (draftRow, error) {
		var d draftRow
		return d, rw.Scan(&d.fields, &d.at)
	}, sql, key)
	if err != nil {
		return nil, time.Time{}, err
	}
	return []byte(row.fields), row.at, nil
}

// EnsureSchema creates the table when missing
func EnsureSchema(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, Schema)
	return perr.FromPostgres(err, perr.ErrorCodePersistence, "create project_drafts")
}

// PGStore is the postgres draft store
type PGStore struct {
	db     repokit.TxRunner
	binder repokit.Binder[Repo]
}

// NewPGStore constructs the pg backend
func NewPGStore(db repokit.TxRunner, binder repokit.Binder[Repo]) *PGStore {
	if db == nil || binder == nil {
		panic("drafts.PGStore requires a TxRunner and a Repo binder")
	}
	return &PGStore{db: db, binder: binder}
}

// Save upserts the draft
func (s *PGStore) Save(ctx context.Context, d domain.Draft) error {
	b, err := json.Marshal(d.Fields)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodePersistence, "encode draft")
	}
	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		return repokit.MustBind(s.binder, q).Upsert(ctx, d.ProjectID, b, d.UpdatedAt)
	})
	return perr.FromPostgresf(err, perr.ErrorCodePersistence, "save draft %s", d.ProjectID)
}

// Load reads the draft; ok is false when none was saved
func (s *PGStore) Load(ctx context.Context, key string) (domain.Draft, bool, error) {
	b, at, err := repokit.MustBind(s.binder, s.db).Get(ctx, key)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Draft{}, false, nil
	}
	if err != nil {
		return domain.Draft{}, false, perr.FromPostgresf(err, perr.ErrorCodePersistence, "load draft %s", key)
	}
	d := domain.Draft{ProjectID: key, UpdatedAt: at.UTC()}
	if err := json.Unmarshal(b, &d.Fields); err != nil {
		return domain.Draft{}, false, perr.Wrapf(err, perr.ErrorCodePersistence, "corrupt draft row for %s", key)
	}
	return d, true, nil
}
