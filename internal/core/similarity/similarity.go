// Package similarity scores how well daily log text evidences a scope item
//
// Three signals are computed and the maximum wins:
//   - containment: the normalized item text occurs in the normalized log text (1.0)
//   - sequence: token LCS ratio 2*LCS/(|a|+|b|) against the best single line
//   - lexical: term frequency cosine against the best window of 1..Window consecutive lines
//
// Lines are the corpus clauses. Windows are anchored on existing lines, so text
// appended as a new line or clause never lowers an item's score
package similarity

import (
	"strings"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/rulepack"
	perr "scopetrack/internal/platform/errors"
)

// Defaults for Options
const (
	DefaultThreshold        = 0.5
	DefaultPartialThreshold = 0.3
	DefaultWindow           = 3
)

// Signal names the signal that produced a score
type Signal string

// Signals in tie-break order
const (
	SignalNone        Signal = "none"
	SignalContainment Signal = "containment"
	SignalSequence    Signal = "sequence"
	SignalLexical     Signal = "lexical"
)

// Options tune the matcher
type Options struct {
	Threshold        float64        // score at or above which an item counts as matched
	PartialThreshold float64        // score at or above which an unmatched item counts as partial
	Window           int            // max consecutive lines per lexical window
	Rules            *rulepack.Pack // stopwords; nil uses the embedded pack
}

// DefaultOptions returns the documented defaults
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, PartialThreshold: DefaultPartialThreshold, Window: DefaultWindow}
}

// Matcher is immutable and safe for concurrent use
type Matcher struct {
	opts Options
	tok  tokenizer
}

// New validates opts and builds a Matcher; zero fields take defaults
func New(opts Options) (*Matcher, error) {
	if opts.Threshold == 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, perr.WithField(perr.InvalidArgf("match threshold %v outside (0,1]", opts.Threshold), "threshold")
	}
	if opts.PartialThreshold == 0 {
		opts.PartialThreshold = min(DefaultPartialThreshold, opts.Threshold)
	}
	if opts.PartialThreshold < 0 || opts.PartialThreshold > opts.Threshold {
		return nil, perr.WithField(
			perr.InvalidArgf("partial threshold %v outside [0,%v]", opts.PartialThreshold, opts.Threshold),
			"partial_threshold",
		)
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Rules == nil {
		p, err := rulepack.Default()
		if err != nil {
			return nil, err
		}
		opts.Rules = p
	}
	return &Matcher{opts: opts, tok: tokenizer{rules: opts.Rules}}, nil
}

// Threshold returns the match threshold
func (m *Matcher) Threshold() float64 { return m.opts.Threshold }

// PartialThreshold returns the partial-progress threshold
func (m *Matcher) PartialThreshold() float64 { return m.opts.PartialThreshold }

// Matches reports whether a score counts as a match
func (m *Matcher) Matches(score float64) bool { return score >= m.opts.Threshold }

// Query is a scope item prepared for scoring
type Query struct {
	Text   string
	padded string
	toks   []string
	lex    vector
}

// Query analyzes a scope item. Items without scoring terms are a MatchingError
func (m *Matcher) Query(item string) (*Query, error) {
	a := m.tok.analyze(item)
	if len(a.toks) == 0 {
		return nil, perr.WithField(perr.Matchingf("scope item %q has no scoring terms", item), "items")
	}
	return &Query{Text: item, padded: pad(a.norm), toks: a.toks, lex: a.lex}, nil
}

type line struct {
	text   string
	padded string
	toks   []string
	lex    vector
}

type window struct {
	start int
	vec   vector
}

// Prepared is a corpus analyzed once and scored against many items
type Prepared struct {
	m       *Matcher
	padded  string
	lines   []line
	windows []window // sizes 2..Window; size 1 is scored per line
}

// Prepare analyzes a corpus
func (m *Matcher) Prepare(c checklist.Corpus) *Prepared {
	p := &Prepared{m: m, lines: make([]line, len(c.Lines))}
	norms := make([]string, len(c.Lines))
	for i, text := range c.Lines {
		a := m.tok.analyze(text)
		norms[i] = a.norm
		p.lines[i] = line{text: text, padded: pad(a.norm), toks: a.toks, lex: a.lex}
	}
	p.padded = pad(strings.Join(nonEmpty(norms), " "))

	for size := 2; size <= m.opts.Window; size++ {
		for start := 0; start+size <= len(p.lines); start++ {
			tf := map[string]float64{}
			for _, l := range p.lines[start : start+size] {
				l.lex.addTo(tf)
			}
			p.windows = append(p.windows, window{start: start, vec: newVector(tf)})
		}
	}
	return p
}

// Len returns the number of lines
func (p *Prepared) Len() int { return len(p.lines) }

// Line returns the original text of line i
func (p *Prepared) Line(i int) string { return p.lines[i].text }

// Evidence is the outcome of scoring one item against a corpus
type Evidence struct {
	Score  float64
	Signal Signal
	Line   int // index of the best single line, -1 when no line scored above zero
}

// Pair scores an item against line i using containment, sequence and lexical signals
func (p *Prepared) Pair(q *Query, i int) (float64, Signal) {
	return pairScore(q, &p.lines[i])
}

func pairScore(q *Query, l *line) (float64, Signal) {
	if strings.Contains(l.padded, q.padded) {
		return 1, SignalContainment
	}
	best, sig := 0.0, SignalNone
	if s := dice(q.toks, l.toks); s > best {
		best, sig = s, SignalSequence
	}
	if s := cosine(q.lex, l.lex); s > best {
		best, sig = s, SignalLexical
	}
	return best, sig
}

// Evaluate scores an item against the whole corpus
func (p *Prepared) Evaluate(q *Query) Evidence {
	ev := Evidence{Signal: SignalNone, Line: -1}
	if len(p.lines) == 0 {
		return ev
	}
	if strings.Contains(p.padded, q.padded) {
		ev.Score, ev.Signal = 1, SignalContainment
	}

	bestLine, bestScore := -1, 0.0
	var bestSig Signal
	for i := range p.lines {
		s, sig := pairScore(q, &p.lines[i])
		if s > bestScore {
			bestLine, bestScore, bestSig = i, s, sig
		}
	}
	ev.Line = bestLine
	if bestScore > ev.Score {
		ev.Score, ev.Signal = bestScore, bestSig
	}

	for _, w := range p.windows {
		if s := cosine(q.lex, w.vec); s > ev.Score {
			ev.Score, ev.Signal = s, SignalLexical
		}
	}
	return ev
}

// Score returns the combined score of item against corpus, 0 for items without scoring terms
func (m *Matcher) Score(item string, c checklist.Corpus) float64 {
	q, err := m.Query(item)
	if err != nil {
		return 0
	}
	return m.Prepare(c).Evaluate(q).Score
}

// ScorePair returns the combined score of item against a single log line
func (m *Matcher) ScorePair(item, logLine string) float64 {
	q, err := m.Query(item)
	if err != nil {
		return 0
	}
	a := m.tok.analyze(logLine)
	s, _ := pairScore(q, &line{text: logLine, padded: pad(a.norm), toks: a.toks, lex: a.lex})
	return s
}

func pad(s string) string { return " " + s + " " }

func nonEmpty(ss []string) []string {
	out := ss[:0:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
