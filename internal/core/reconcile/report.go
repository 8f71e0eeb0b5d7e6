package reconcile

import (
	"time"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/similarity"
)

// Status explains whether a comparison was made
type Status string

// Report statuses
const (
	StatusOK             Status = "ok"
	StatusEmptyChecklist Status = "empty_checklist"
	StatusEmptyLog       Status = "empty_log"
	StatusEmpty          Status = "empty"
)

// EmptyMessage accompanies every non-ok status
const EmptyMessage = "Scope or daily log is empty. No valid comparison made."

// Tier is the three-level progress status of one item
type Tier string

// Tiers
const (
	TierDone    Tier = "done"
	TierPartial Tier = "partial"
	TierPending Tier = "pending"
)

// MatchResult is the outcome for one scope item
type MatchResult struct {
	Item        checklist.ScopeItem `json:"item"`
	Matched     bool                `json:"matched"`
	Score       float64             `json:"score"`
	BestLogLine *string             `json:"best_log_line"`
	Signal      similarity.Signal   `json:"signal"`
	Tier        Tier                `json:"tier"`
}

// Report is one reconciliation of a checklist against a day's log
type Report struct {
	ProjectID       string                `json:"project_id"`
	Status          Status                `json:"status"`
	Message         string                `json:"message,omitempty"`
	Matched         []checklist.ScopeItem `json:"matched"`
	Missing         []checklist.ScopeItem `json:"missing"`
	OutOfScope      []string              `json:"out_of_scope"`
	OutOfScopeTotal int                   `json:"out_of_scope_total"`
	CompletionPct   int                   `json:"completion_pct"`
	Results         []MatchResult         `json:"results"`
	Threshold       float64               `json:"threshold"`
	ChangeOrders    []string              `json:"change_orders"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// Total is the number of checklist items
func (r Report) Total() int { return len(r.Matched) + len(r.Missing) }

// Partial returns the missing items that reached the partial tier
func (r Report) Partial() []checklist.ScopeItem {
	out := []checklist.ScopeItem{}
	for _, res := range r.Results {
		if res.Tier == TierPartial {
			out = append(out, res.Item)
		}
	}
	return out
}

// CompletionPct is round(100*matched/max(1,total)) clamped to [0,100]
func CompletionPct(matched, total int) int {
	if total <= 0 || matched <= 0 {
		return 0
	}
	if matched >= total {
		return 100
	}
	// integer round half up
	return (200*matched + total) / (2 * total)
}
