// Package service reconciles daily logs against stored scopes
package service

import (
	"context"
	"strings"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/progress"
	"scopetrack/internal/core/reconcile"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/services/dailylogs/domain"

	"github.com/google/uuid"
)

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 500
)

// Deps are the optional collaborators of the service
type Deps struct {
	Drafts  domain.DraftSaver   // nil skips autofill
	History domain.HistoryStore // nil disables snapshots and the history query
	Workers int                 // batch parallelism; 0 uses GOMAXPROCS
}

// Svc implements domain.ServicePort
type Svc struct {
	scopes  domain.ScopeLoader
	engine  *reconcile.Engine
	drafts  domain.DraftSaver
	history domain.HistoryStore
	workers int
	newID   func() string
}

// New constructs the daily log service
func New(scopes domain.ScopeLoader, engine *reconcile.Engine, d Deps) *Svc {
	if scopes == nil || engine == nil {
		panic("dailylogs.Service requires a ScopeLoader and an Engine")
	}
	return &Svc{
		scopes:  scopes,
		engine:  engine,
		drafts:  d.Drafts,
		history: d.History,
		workers: d.Workers,
		newID:   func() string { return uuid.NewString() },
	}
}

// Submit reconciles one daily log, saves it as the project's draft and records a snapshot
func (s *Svc) Submit(ctx context.Context, projectID string, in domain.SubmitInput) (domain.Result, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return domain.Result{}, err
	}
	style, err := styleOf(in.Format)
	if err != nil {
		return domain.Result{}, err
	}
	c, err := s.scopes.Checklist(ctx, key)
	if err != nil {
		return domain.Result{}, err
	}
	log := in.Log()
	rep, err := s.engine.Reconcile(ctx, key, c, log.Corpus())
	if err != nil {
		return domain.Result{}, err
	}

	if s.drafts != nil {
		if err := s.drafts.Save(ctx, key, log.Fields()); err != nil {
			return domain.Result{}, err
		}
	}

	res := domain.Result{Report: rep, Summary: progress.Summary(rep)}
	if style != "" {
		if res.Rendered, err = progress.Render(rep, style); err != nil {
			return domain.Result{}, err
		}
	}

	l := logger.For(ctx, "dailylogs")
	if s.history != nil {
		id := s.newID()
		if err := s.history.Record(ctx, domain.SnapshotOf(id, rep)); err != nil {
			l.Warn().Err(err).Str("project", key).Msg("snapshot not recorded")
		} else {
			res.RunID = id
		}
	}

	l.Info().
		Str("project", key).
		Str("status", string(rep.Status)).
		Int("items", rep.Total()).
		Int("completion_pct", rep.CompletionPct).
		Int("out_of_scope", rep.OutOfScopeTotal).
		Msg("daily log reconciled")
	return res, nil
}

// SubmitBatch reconciles independent logs on a bounded worker pool; results keep input order.
// Batches neither touch drafts nor record snapshots
func (s *Svc) SubmitBatch(ctx context.Context, items []domain.BatchItem) ([]domain.BatchResult, error) {
	out := make([]domain.BatchResult, len(items))
	jobs := make([]reconcile.Job, 0, len(items))
	slot := make([]int, 0, len(items))
	for i, it := range items {
		out[i].ProjectID = it.ProjectID
		key, err := checklist.ProjectKey(it.ProjectID)
		if err != nil {
			out[i].Error = err
			continue
		}
		out[i].ProjectID = key
		c, err := s.scopes.Checklist(ctx, key)
		if err != nil {
			if perr.Fatal(err) {
				return nil, err
			}
			out[i].Error = err
			continue
		}
		jobs = append(jobs, reconcile.Job{ProjectID: key, Checklist: c, Corpus: it.Log.Corpus()})
		slot = append(slot, i)
	}

	outcomes, err := s.engine.ReconcileBatch(ctx, jobs, s.workers)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "batch reconcile interrupted")
	}
	for j, o := range outcomes {
		i := slot[j]
		if o.Err != nil {
			out[i].Error = o.Err
			continue
		}
		out[i].Result = &domain.Result{Report: o.Report, Summary: progress.Summary(o.Report)}
	}
	return out, nil
}

// History lists recent snapshots; limit is clamped to [1, MaxHistoryLimit]
func (s *Svc) History(ctx context.Context, projectID string, limit int) ([]domain.Snapshot, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return nil, err
	}
	if s.history == nil {
		return nil, perr.Unavailablef("report history is disabled")
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	return s.history.Recent(ctx, key, limit)
}

// styleOf maps the submitted format to a render style; xlsx renders nothing here
func styleOf(format string) (progress.Style, error) {
	if strings.EqualFold(strings.TrimSpace(format), domain.FormatXLSX) {
		return "", nil
	}
	return progress.ParseStyle(format)
}
