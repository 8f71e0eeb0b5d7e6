// Package domain holds the daily log reconciliation contracts
package domain

import (
	"context"
	"time"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/reconcile"
)

// FormatXLSX asks the handler for a workbook instead of a rendered report
const FormatXLSX = "xlsx"

// SubmitInput is the body of POST /logs/{project}
type SubmitInput struct {
	WorkPerformed string `json:"work_performed" validate:"max=20000"`
	CrewNotes     string `json:"crew_notes" validate:"max=20000"`
	SafetyNotes   string `json:"safety_notes" validate:"max=20000"`
	Extra         string `json:"extra,omitempty" validate:"max=20000"`
	Format        string `json:"format,omitempty" validate:"oneof_fold=text plain txt markdown md json xlsx"`
}

// Log returns the submitted fields as a daily log
func (in SubmitInput) Log() checklist.DailyLog {
	return checklist.DailyLog{
		WorkPerformed: in.WorkPerformed,
		CrewNotes:     in.CrewNotes,
		SafetyNotes:   in.SafetyNotes,
		Extra:         in.Extra,
	}
}

// Result is one reconciled daily log
type Result struct {
	Report   reconcile.Report `json:"report"`
	Summary  string           `json:"summary"`
	Rendered string           `json:"rendered,omitempty"`
	RunID    string           `json:"run_id,omitempty"`
}

// Snapshot is the persisted headline of one reconciliation
type Snapshot struct {
	RunID         string           `json:"run_id"`
	ProjectID     string           `json:"project_id"`
	Status        reconcile.Status `json:"status"`
	CompletionPct int              `json:"completion_pct"`
	Matched       int              `json:"matched"`
	Missing       int              `json:"missing"`
	OutOfScope    int              `json:"out_of_scope"`
	Threshold     float64          `json:"threshold"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// SnapshotOf summarizes a report under runID
func SnapshotOf(runID string, r reconcile.Report) Snapshot {
	return Snapshot{
		RunID:         runID,
		ProjectID:     r.ProjectID,
		Status:        r.Status,
		CompletionPct: r.CompletionPct,
		Matched:       len(r.Matched),
		Missing:       len(r.Missing),
		OutOfScope:    r.OutOfScopeTotal,
		Threshold:     r.Threshold,
		GeneratedAt:   r.GeneratedAt,
	}
}

// BatchItem is one daily log in a batch run
type BatchItem struct {
	ProjectID string             `json:"project_id"`
	Log       checklist.DailyLog `json:"log"`
}

// BatchResult pairs a batch item with its outcome; Error is set when Result is nil
type BatchResult struct {
	ProjectID string  `json:"project_id"`
	Result    *Result `json:"result,omitempty"`
	Error     error   `json:"-"`
}

// ScopeLoader reads the stored checklist for a project
type ScopeLoader interface {
	Checklist(ctx context.Context, projectID string) (checklist.Checklist, error)
}

// DraftSaver keeps the last submitted form for autofill
type DraftSaver interface {
	Save(ctx context.Context, projectID string, fields map[string]string) error
}

// HistoryStore records and lists reconciliation snapshots
type HistoryStore interface {
	Record(ctx context.Context, s Snapshot) error
	Recent(ctx context.Context, projectKey string, limit int) ([]Snapshot, error)
}

// ServicePort is the daily log surface
type ServicePort interface {
	Submit(ctx context.Context, projectID string, in SubmitInput) (Result, error)
	SubmitBatch(ctx context.Context, items []BatchItem) ([]BatchResult, error)
	History(ctx context.Context, projectID string, limit int) ([]Snapshot, error)
}
