// Package segment turns extracted scope-of-work text into an ordered checklist
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/normalize"
	"scopetrack/internal/core/phrase"
	"scopetrack/internal/core/rulepack"
)

// DefaultMinLength is the shortest line, in runes, kept as a scope item
const DefaultMinLength = 15

// Options tune segmentation
type Options struct {
	MinLength int            // lines shorter than this after marker stripping are dropped
	Denylist  []string       // replaces the rule pack denylist when non-nil
	Extra     []string       // added to the denylist
	Rules     *rulepack.Pack // denylist and stopwords; nil uses the embedded pack
}

// Segmenter is immutable and safe for concurrent use
type Segmenter struct {
	minLen int
	deny   *phrase.Set
	rules  *rulepack.Pack
}

// markers matches leading bullets and list numbering, possibly repeated:
// "-", "•", "1.", "2)", "(3)", "1.2.", "a)", "b. "
// Numbering needs trailing space so "2.5 inch" keeps its number.
// Rule lines such as "____" or "====" are not markers; they carry no scoring
// terms and are dropped by the term check in Segment and Clean
var markers = regexp.MustCompile(
	`^(?:[-*•·▪●◦‣–—>]+\s*|\(?\d{1,3}(?:\.\d{1,3})*[.)](?:\s+|$)|\(?[a-zA-Z][.)]\s+)+`,
)

// New builds a segmenter; the rule pack supplies the denylist unless opts.Denylist is set
func New(opts Options) (*Segmenter, error) {
	if opts.MinLength <= 0 {
		opts.MinLength = DefaultMinLength
	}
	rules := opts.Rules
	if rules == nil {
		p, err := rulepack.Default()
		if err != nil {
			return nil, err
		}
		rules = p
	}
	deny := opts.Denylist
	if deny == nil {
		deny = rules.Phrases
	}
	all := make([]string, 0, len(deny)+len(opts.Extra))
	all = append(all, deny...)
	all = append(all, opts.Extra...)
	return &Segmenter{minLen: opts.MinLength, deny: phrase.New(all...), rules: rules}, nil
}

// MinLength returns the configured minimum item length
func (s *Segmenter) MinLength() int { return s.minLen }

// Segment splits raw text into scope items: one per kept line, in first-seen order.
// Lines without scoring terms are dropped so every item can be reconciled
func (s *Segmenter) Segment(raw string) checklist.Checklist {
	raw = normalize.Sanitize(raw)
	lines := checklist.SplitLines(raw)

	texts := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		text := StripMarkers(line)
		if utf8.RuneCountInString(text) < s.minLen || !s.rules.HasTerms(text) {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		if s.deny.Contains(text) {
			continue
		}
		texts = append(texts, text)
	}
	return checklist.New(texts...)
}

// Clean applies marker stripping and de-duplication to explicit items without length
// or denylist filtering; used when a caller supplies the checklist directly.
// Items without scoring terms are dropped like blank ones
func (s *Segmenter) Clean(items []string) checklist.Checklist {
	texts := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		text := StripMarkers(strings.TrimSpace(normalize.Sanitize(it)))
		if text == "" || !s.rules.HasTerms(text) {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		texts = append(texts, text)
	}
	return checklist.New(texts...)
}

// StripMarkers removes leading bullets and numbering and trims the rest
func StripMarkers(line string) string {
	line = strings.TrimSpace(line)
	if loc := markers.FindStringIndex(line); loc != nil {
		line = line[loc[1]:]
	}
	return strings.TrimSpace(line)
}
