// Package normalize provides the deterministic text normalizer used for matching
// Pipeline order
// 1 Sanitize controls and drop invalid UTF-8
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove zero-width and combining marks
// 5 Width fold fullwidth to ASCII
// 6 Punctuation and symbols become spaces
// 7 Split letter/digit boundaries so 2ft and 2 ft agree
// 8 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transform chains carry state, so each call borrows its own
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)), // combining marks
			runes.Remove(runes.In(unicode.Cf)), // ZWJ ZWNJ FEFF etc
			width.Fold,
		)
	},
}

// Words returns the normalized words of s
func Words(s string) []string { return strings.Fields(Text(s)) }

// Text returns the normalized single-line form of s; it is idempotent
func Text(s string) string {
	if s == "" {
		return ""
	}
	tr := chainPool.Get().(transform.Transformer)
	defer chainPool.Put(tr)
	tr.Reset()
	ns, _, _ := transform.String(tr, Sanitize(s))
	return fold(ns)
}

type class uint8

const (
	classSpace class = iota
	classLetter
	classDigit
)

func classify(r rune) class {
	switch {
	case unicode.IsLetter(r):
		return classLetter
	case unicode.IsNumber(r):
		return classDigit
	default:
		return classSpace
	}
}

// fold turns everything but letters and digits into single spaces and
// separates letter runs from digit runs
func fold(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	prev := classSpace
	pending := false
	for _, r := range s {
		c := classify(r)
		if c == classSpace {
			if prev != classSpace {
				pending = true
			}
			prev = classSpace
			continue
		}
		if pending || (prev != classSpace && prev != c) {
			b.WriteByte(' ')
		}
		pending = false
		b.WriteRune(r)
		prev = c
	}
	return b.String()
}
