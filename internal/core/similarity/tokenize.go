package similarity

import (
	"strings"
	"unicode"

	"scopetrack/internal/core/normalize"
	"scopetrack/internal/core/rulepack"

	"github.com/kljensen/snowball"
)

type analysis struct {
	norm string   // normalized text, stopwords kept
	toks []string // stemmed tokens without stopwords
	lex  vector   // term frequencies of toks without numbers
}

type tokenizer struct {
	rules *rulepack.Pack
}

func (t tokenizer) analyze(s string) analysis {
	norm := normalize.Text(s)
	words := strings.Fields(norm)
	toks := make([]string, 0, len(words))
	tf := map[string]float64{}
	for _, w := range words {
		if t.rules.IsStopword(w) {
			continue
		}
		st := stem(w)
		toks = append(toks, st)
		if !numeric(st) {
			tf[st]++
		}
	}
	return analysis{norm: norm, toks: toks, lex: newVector(tf)}
}

// stem reduces an english word to its snowball stem; numbers and short words pass through
func stem(w string) string {
	if len(w) < 3 || numeric(w) {
		return w
	}
	st, err := snowball.Stem(w, "english", false)
	if err != nil || st == "" {
		return w
	}
	return st
}

func numeric(w string) bool {
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return w != ""
}
