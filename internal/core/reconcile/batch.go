package reconcile

import (
	"context"
	"runtime"

	"scopetrack/internal/core/checklist"

	"golang.org/x/sync/errgroup"
)

// Job is one independent reconciliation
type Job struct {
	ProjectID string
	Checklist checklist.Checklist
	Corpus    checklist.Corpus
}

// Outcome pairs a job's report with its error
type Outcome struct {
	Report Report
	Err    error
}

// ReconcileBatch runs jobs on at most workers goroutines and returns outcomes in job order.
// Per-job failures land in Outcome.Err; the returned error is set only when ctx ends early
func (e *Engine) ReconcileBatch(ctx context.Context, jobs []Job, workers int) ([]Outcome, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]Outcome, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rep, err := e.Reconcile(gctx, j.ProjectID, j.Checklist, j.Corpus)
			out[i] = Outcome{Report: rep, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out, ctx.Err()
}
