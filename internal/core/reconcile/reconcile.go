// Package reconcile compares a scope checklist against a daily log and
// reports matched, missing and out-of-scope work
package reconcile

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/normalize"
	"scopetrack/internal/core/similarity"
	perr "scopetrack/internal/platform/errors"
)

// DefaultOutOfScopeMinLength is the rune length a log line must exceed to be reported out of scope
const DefaultOutOfScopeMinLength = 15

// Options configure an Engine; zero fields take defaults
type Options struct {
	Matcher             *similarity.Matcher
	OutOfScopeMinLength int
	OutOfScopeLimit     int // 0 keeps every candidate
	Now                 func() time.Time
}

// Engine runs reconciliations; it holds no mutable state
type Engine struct {
	m      *similarity.Matcher
	minLen int
	limit  int
	now    func() time.Time
}

// New builds an Engine
func New(opts Options) (*Engine, error) {
	m := opts.Matcher
	if m == nil {
		var err error
		if m, err = similarity.New(similarity.DefaultOptions()); err != nil {
			return nil, err
		}
	}
	if opts.OutOfScopeMinLength <= 0 {
		opts.OutOfScopeMinLength = DefaultOutOfScopeMinLength
	}
	if opts.OutOfScopeLimit < 0 {
		return nil, perr.WithField(perr.InvalidArgf("out of scope limit %d is negative", opts.OutOfScopeLimit), "out_of_scope_limit")
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{m: m, minLen: opts.OutOfScopeMinLength, limit: opts.OutOfScopeLimit, now: opts.Now}, nil
}

// Matcher returns the engine's matcher
func (e *Engine) Matcher() *similarity.Matcher { return e.m }

// Reconcile scores every item against the corpus and collects out-of-scope lines.
// Empty checklists and empty logs produce a zero-completion report, not an error
func (e *Engine) Reconcile(ctx context.Context, projectID string, c checklist.Checklist, corpus checklist.Corpus) (Report, error) {
	if err := c.Validate(); err != nil {
		return Report{}, err
	}

	rep := Report{
		ProjectID:    projectID,
		Status:       StatusOK,
		Matched:      []checklist.ScopeItem{},
		Missing:      []checklist.ScopeItem{},
		OutOfScope:   []string{},
		Results:      []MatchResult{},
		Threshold:    e.m.Threshold(),
		ChangeOrders: []string{},
		GeneratedAt:  e.now(),
	}

	switch {
	case c.Empty() && corpus.Empty():
		rep.Status = StatusEmpty
	case c.Empty():
		rep.Status = StatusEmptyChecklist
	case corpus.Empty():
		rep.Status = StatusEmptyLog
	}
	if rep.Status != StatusOK {
		rep.Message = EmptyMessage
	}
	if c.Empty() {
		return rep, nil
	}

	items := c.Items()
	queries := make([]*similarity.Query, len(items))
	for i, it := range items {
		q, err := e.m.Query(it.Text)
		if err != nil {
			return Report{}, perr.WithOp(err, "reconcile")
		}
		queries[i] = q
	}

	prep := e.m.Prepare(corpus)
	for i, it := range items {
		if err := ctx.Err(); err != nil {
			return Report{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "reconcile canceled")
		}
		ev := prep.Evaluate(queries[i])
		res := MatchResult{
			Item:    it,
			Matched: e.m.Matches(ev.Score),
			Score:   ev.Score,
			Signal:  ev.Signal,
			Tier:    e.tier(ev.Score),
		}
		if ev.Line >= 0 {
			line := prep.Line(ev.Line)
			res.BestLogLine = &line
		}
		if res.Matched {
			rep.Matched = append(rep.Matched, it)
		} else {
			rep.Missing = append(rep.Missing, it)
		}
		rep.Results = append(rep.Results, res)
	}

	candidates := e.outOfScope(prep, queries)
	rep.OutOfScopeTotal = len(candidates)
	if e.limit > 0 && len(candidates) > e.limit {
		candidates = candidates[:e.limit]
	}
	rep.OutOfScope = candidates
	if rep.OutOfScopeTotal > 0 {
		rep.ChangeOrders = append(rep.ChangeOrders,
			fmt.Sprintf("Suggest review of %d possible out-of-scope items.", rep.OutOfScopeTotal))
	}

	rep.CompletionPct = CompletionPct(len(rep.Matched), len(items))
	return rep, nil
}

func (e *Engine) tier(score float64) Tier {
	switch {
	case e.m.Matches(score):
		return TierDone
	case score >= e.m.PartialThreshold():
		return TierPartial
	default:
		return TierPending
	}
}

// outOfScope returns lines longer than minLen that match no item, deduplicated on normalized text
func (e *Engine) outOfScope(prep *similarity.Prepared, queries []*similarity.Query) []string {
	out := []string{}
	seen := map[string]struct{}{}
lines:
	for i := 0; i < prep.Len(); i++ {
		text := prep.Line(i)
		if utf8.RuneCountInString(text) <= e.minLen {
			continue
		}
		for _, q := range queries {
			if s, _ := prep.Pair(q, i); e.m.Matches(s) {
				continue lines
			}
		}
		key := normalize.Text(text)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, text)
	}
	return out
}
