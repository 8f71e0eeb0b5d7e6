// Package progress renders reconciliation reports for people
package progress

import (
	"encoding/json"
	"fmt"
	"strings"

	"scopetrack/internal/core/reconcile"
	perr "scopetrack/internal/platform/errors"
)

// MaxItemWidth is the rune limit for item and log text in summaries
const MaxItemWidth = 100

// Style selects an output format
type Style string

// Styles
const (
	StyleText     Style = "text"
	StyleMarkdown Style = "markdown"
	StyleJSON     Style = "json"
)

// ParseStyle accepts text, markdown (md) and json; empty means text
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "plain", "txt":
		return StyleText, nil
	case "markdown", "md":
		return StyleMarkdown, nil
	case "json":
		return StyleJSON, nil
	}
	return "", perr.WithField(perr.InvalidArgf("unknown report style %q", s), "format")
}

// Render formats r in the given style
func Render(r reconcile.Report, style Style) (string, error) {
	switch style {
	case StyleText, "":
		return Format(r), nil
	case StyleMarkdown:
		return Markdown(r), nil
	case StyleJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeJSON, "encode report")
		}
		return string(b), nil
	}
	return "", perr.WithField(perr.InvalidArgf("unknown report style %q", style), "format")
}

// Summary is the one-line completion headline
func Summary(r reconcile.Report) string {
	return fmt.Sprintf("Scope Progress Summary: %d%% complete (%d of %d items)",
		r.CompletionPct, len(r.Matched), r.Total())
}

// Format renders the plain text report
func Format(r reconcile.Report) string {
	partial := partialSet(r)
	var b strings.Builder
	b.WriteString(Summary(r))
	b.WriteByte('\n')

	fmt.Fprintf(&b, "Completed (%d):\n", len(r.Matched))
	for _, it := range r.Matched {
		b.WriteString("✅ " + Truncate(it.Text, MaxItemWidth) + "\n")
	}
	fmt.Fprintf(&b, "Pending (%d):\n", len(r.Missing))
	for _, it := range r.Missing {
		b.WriteString("⏳ " + Truncate(it.Text, MaxItemWidth))
		if partial[it.Order] {
			b.WriteString(" (partial)")
		}
		b.WriteByte('\n')
	}
	if len(r.OutOfScope) > 0 {
		fmt.Fprintf(&b, "Out of Scope (%d):\n", len(r.OutOfScope))
		for _, l := range r.OutOfScope {
			b.WriteString("⚠️ " + Truncate(l, MaxItemWidth) + "\n")
		}
	}
	if len(r.ChangeOrders) > 0 {
		b.WriteString("Change Orders:\n")
		for _, c := range r.ChangeOrders {
			b.WriteString("- " + c + "\n")
		}
	}
	if r.Status != reconcile.StatusOK && r.Message != "" {
		b.WriteString("Note: " + r.Message + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Markdown renders the report as a markdown section
func Markdown(r reconcile.Report) string {
	partial := partialSet(r)
	var b strings.Builder
	fmt.Fprintf(&b, "## Scope Progress\n\n**%d%% complete** (%d of %d items)\n", r.CompletionPct, len(r.Matched), r.Total())

	fmt.Fprintf(&b, "\n### Completed (%d)\n\n", len(r.Matched))
	for _, it := range r.Matched {
		b.WriteString("- [x] " + mdEscape(Truncate(it.Text, MaxItemWidth)) + "\n")
	}
	fmt.Fprintf(&b, "\n### Pending (%d)\n\n", len(r.Missing))
	for _, it := range r.Missing {
		b.WriteString("- [ ] " + mdEscape(Truncate(it.Text, MaxItemWidth)))
		if partial[it.Order] {
			b.WriteString(" _(partial)_")
		}
		b.WriteByte('\n')
	}
	if len(r.OutOfScope) > 0 {
		fmt.Fprintf(&b, "\n### Out of Scope (%d)\n\n", len(r.OutOfScope))
		for _, l := range r.OutOfScope {
			b.WriteString("- ⚠️ " + mdEscape(Truncate(l, MaxItemWidth)) + "\n")
		}
	}
	if len(r.ChangeOrders) > 0 {
		b.WriteString("\n### Change Orders\n\n")
		for _, c := range r.ChangeOrders {
			b.WriteString("- " + c + "\n")
		}
	}
	if r.Status != reconcile.StatusOK && r.Message != "" {
		b.WriteString("\n> Note: " + r.Message + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Truncate shortens s to width runes, ending in "..." when cut
func Truncate(s string, width int) string {
	rs := []rune(s)
	if width <= 3 || len(rs) <= width {
		return s
	}
	return string(rs[:width-3]) + "..."
}

func partialSet(r reconcile.Report) map[int]bool {
	out := map[int]bool{}
	for _, res := range r.Results {
		if res.Tier == reconcile.TierPartial {
			out[res.Item.Order] = true
		}
	}
	return out
}

var mdReplacer = strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`)

func mdEscape(s string) string { return mdReplacer.Replace(s) }
