// Package repo stores reconciliation snapshots in clickhouse
package repo

import (
	"context"
	"time"

	"scopetrack/internal/core/reconcile"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/platform/store"
	"scopetrack/internal/services/dailylogs/domain"

	"github.com/google/uuid"
)

// Table holds one row per reconciliation
const Table = "reconcile_snapshots"

// Schema creates Table when missing
const Schema = `
CREATE TABLE IF NOT EXISTS reconcile_snapshots (
	run_id         UUID,
	project_key    String,
	generated_at   DateTime64(3, 'UTC'),
	status         LowCardinality(String),
	completion_pct UInt8,
	matched        UInt32,
	missing        UInt32,
	out_of_scope   UInt32,
	threshold      Float64
) ENGINE = MergeTree
ORDER BY (project_key, generated_at)`

// History implements domain.HistoryStore
type History struct{ ch store.Clickhouse }

// NewHistory wraps a clickhouse seam
func NewHistory(ch store.Clickhouse) *History {
	if ch == nil {
		panic("dailylogs.History requires a clickhouse client")
	}
	return &History{ch: ch}
}

// EnsureSchema creates the snapshot table
func (h *History) EnsureSchema(ctx context.Context) error {
	if err := h.ch.Exec(ctx, Schema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "create reconcile_snapshots")
	}
	return nil
}

// Record appends one snapshot
func (h *History) Record(ctx context.Context, s domain.Snapshot) error {
	id, err := uuid.Parse(s.RunID)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("run id %q: %v", s.RunID, err), "run_id")
	}
	row := []any{
		id,
		s.ProjectID,
		s.GeneratedAt.UTC(),
		string(s.Status),
		uint8(s.CompletionPct),
		uint32(s.Matched),
		uint32(s.Missing),
		uint32(s.OutOfScope),
		s.Threshold,
	}
	if err := h.ch.Insert(ctx, Table, [][]any{row}); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "record snapshot for %s", s.ProjectID)
	}
	return nil
}

// Recent lists the newest snapshots for a project, newest first
func (h *History) Recent(ctx context.Context, projectKey string, limit int) ([]domain.Snapshot, error) {
	const sql = `
SELECT toString(run_id), project_key, generated_at, status,
       completion_pct, matched, missing, out_of_scope, threshold
FROM reconcile_snapshots
WHERE project_key = ?
ORDER BY generated_at DESC
LIMIT ?`
	rows, err := h.ch.Query(ctx, sql, projectKey, limit)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "query snapshots for %s", projectKey)
	}
	out, err := store.Collect(rows, scanSnapshot)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodePersistence, "scan snapshots for %s", projectKey)
	}
	if out == nil {
		out = []domain.Snapshot{}
	}
	return out, nil
}

func scanSnapshot(r store.Row) (domain.Snapshot, error) {
	var (
		s                         domain.Snapshot
		status                    string
		pct                       uint8
		matched, missing, outside uint32
		at                        time.Time
	)
	if err := r.Scan(&s.RunID, &s.ProjectID, &at, &status, &pct, &matched, &missing, &outside, &s.Threshold); err != nil {
		return domain.Snapshot{}, err
	}
	s.GeneratedAt = at.UTC()
	s.Status = reconcile.Status(status)
	s.CompletionPct = int(pct)
	s.Matched, s.Missing, s.OutOfScope = int(matched), int(missing), int(outside)
	return s, nil
}
