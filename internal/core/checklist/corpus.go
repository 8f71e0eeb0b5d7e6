package checklist

import (
	"strings"
	"unicode"

	perr "scopetrack/internal/platform/errors"
)

// DailyLog is the set of free-text fields submitted for one day
type DailyLog struct {
	WorkPerformed string `json:"work_performed"`
	CrewNotes     string `json:"crew_notes"`
	SafetyNotes   string `json:"safety_notes"`
	Extra         string `json:"extra,omitempty"`
}

// Corpus joins the fields with newlines in a fixed order
func (d DailyLog) Corpus() Corpus {
	return NewCorpus(d.WorkPerformed, d.CrewNotes, d.SafetyNotes, d.Extra)
}

// Fields returns the non-empty fields keyed by their JSON names
func (d DailyLog) Fields() map[string]string {
	out := make(map[string]string, 4)
	put := func(k, v string) {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	put("work_performed", d.WorkPerformed)
	put("crew_notes", d.CrewNotes)
	put("safety_notes", d.SafetyNotes)
	put("extra", d.Extra)
	return out
}

// Corpus is a day's log text plus its log lines: trimmed, non-empty clauses
// of each line, so text appended to a field after a sentence end forms new
// lines instead of lengthening old ones
type Corpus struct {
	Text  string
	Lines []string
}

// NewCorpus joins parts with newlines and splits the result into clauses
func NewCorpus(parts ...string) Corpus {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	text := strings.Join(kept, "\n")
	return Corpus{Text: text, Lines: SplitClauses(text)}
}

// Empty reports whether the corpus has no lines
func (c Corpus) Empty() bool { return len(c.Lines) == 0 }

// Append returns a new corpus with text added on a new line
func (c Corpus) Append(text string) Corpus {
	return NewCorpus(c.Text, text)
}

// SplitLines splits on \n, \r\n and \r, trims and drops blank lines
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, l := range raw {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// SplitClauses splits s into lines, then each line after ".", ";", "!" or "?"
// followed by a space or tab. The punctuation stays with its clause
func SplitClauses(s string) []string {
	lines := SplitLines(s)
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		start := 0
		for i := 0; i+1 < len(l); i++ {
			if strings.IndexByte(".;!?", l[i]) < 0 || (l[i+1] != ' ' && l[i+1] != '\t') {
				continue
			}
			if c := strings.TrimSpace(l[start : i+1]); c != "" {
				out = append(out, c)
			}
			start = i + 1
		}
		if c := strings.TrimSpace(l[start:]); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// ProjectKey normalizes a project id: lowercase, whitespace runs become "_"
// Ids that could escape a storage directory are rejected
func ProjectKey(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", perr.WithField(perr.Validationf("project id is required"), "project_id")
	}
	var b strings.Builder
	b.Grow(len(id))
	inWS := false
	for _, r := range strings.ToLower(id) {
		if unicode.IsSpace(r) {
			if !inWS {
				b.WriteByte('_')
			}
			inWS = true
			continue
		}
		inWS = false
		b.WriteRune(r)
	}
	key := b.String()
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") || strings.ContainsRune(key, 0) {
		return "", perr.WithField(perr.Validationf("project id %q is not a valid key", id), "project_id")
	}
	return key, nil
}
