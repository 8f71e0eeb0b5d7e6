// Package rulepack loads the embedded rules.json that drives segmentation and matching:
// the administrative denylist and the stopword list.
// rules.json is assembled from the TOML fragments under rules/ by scopetrack-rulepacker
package rulepack

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"scopetrack/internal/core/normalize"
)

//go:embed rules.json
var embedded []byte

// Version is the only rules.json layout this package understands
const Version = 1

// Entry is one denylisted phrase with an optional note for reviewers
type Entry struct {
	Phrase string `json:"phrase" toml:"phrase"`
	Reason string `json:"reason,omitempty" toml:"reason"`
}

// Document is the wire layout shared by rules.json and the TOML fragments
type Document struct {
	Version   int               `json:"version" toml:"version"`
	Meta      map[string]string `json:"meta,omitempty" toml:"meta"`
	Denylist  []Entry           `json:"denylist" toml:"denylist"`
	Stopwords []string          `json:"stopwords" toml:"stopwords"`
}

// Pack is a compiled rule pack
type Pack struct {
	Version int
	Meta    map[string]string

	// Denylist keeps source order; Phrases holds the normalized, deduped phrases in the same order
	Denylist []Entry
	Phrases  []string

	// Stopset holds normalized stopwords
	Stopset map[string]struct{}
}

// Load returns the compiled pack from the embedded rules.json
func Load() (*Pack, error) { return Parse(embedded) }

var defaultPack = sync.OnceValues(Load)

// Default returns the embedded pack, compiled once per process
func Default() (*Pack, error) { return defaultPack() }

// Parse decodes and compiles a rules.json payload
func Parse(b []byte) (*Pack, error) {
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("rulepack: parse rules.json: %w", err)
	}
	return Compile(doc)
}

// Compile validates a document and builds lookup structures
func Compile(doc Document) (*Pack, error) {
	if doc.Version != Version {
		return nil, fmt.Errorf("rulepack: unsupported rules version %d (want %d)", doc.Version, Version)
	}

	p := &Pack{
		Version: doc.Version,
		Meta:    doc.Meta,
		Stopset: make(map[string]struct{}, len(doc.Stopwords)),
	}

	seen := make(map[string]struct{}, len(doc.Denylist))
	for i, e := range doc.Denylist {
		key := normalize.Text(e.Phrase)
		if key == "" {
			return nil, fmt.Errorf("rulepack: denylist entry %d has an empty phrase", i)
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		p.Denylist = append(p.Denylist, Entry{Phrase: strings.TrimSpace(e.Phrase), Reason: e.Reason})
		p.Phrases = append(p.Phrases, key)
	}

	for _, w := range doc.Stopwords {
		for _, tok := range normalize.Words(w) {
			p.Stopset[tok] = struct{}{}
		}
	}
	return p, nil
}

// IsStopword reports whether a normalized word is ignored for scoring
func (p *Pack) IsStopword(w string) bool {
	_, ok := p.Stopset[w]
	return ok
}

// HasTerms reports whether text keeps at least one word after normalization and
// stopword removal. Text without one cannot be scored by the matcher
func (p *Pack) HasTerms(text string) bool {
	for _, w := range normalize.Words(text) {
		if !p.IsStopword(w) {
			return true
		}
	}
	return false
}

// Stopwords returns the stopwords sorted, for stable output
func (p *Pack) Stopwords() []string {
	out := make([]string, 0, len(p.Stopset))
	for w := range p.Stopset {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Merge folds fragment documents into one, keeping the first occurrence of each phrase
// and returning stopwords sorted. The base supplies version and meta
func Merge(base Document, fragments ...Document) Document {
	out := Document{Version: base.Version, Meta: map[string]string{}}
	for k, v := range base.Meta {
		out.Meta[k] = v
	}

	seenPhrase := map[string]struct{}{}
	seenStop := map[string]struct{}{}
	for _, d := range append([]Document{base}, fragments...) {
		for k, v := range d.Meta {
			if _, ok := out.Meta[k]; !ok {
				out.Meta[k] = v
			}
		}
		for _, e := range d.Denylist {
			key := normalize.Text(e.Phrase)
			if key == "" {
				continue
			}
			if _, ok := seenPhrase[key]; ok {
				continue
			}
			seenPhrase[key] = struct{}{}
			out.Denylist = append(out.Denylist, Entry{Phrase: strings.TrimSpace(e.Phrase), Reason: e.Reason})
		}
		for _, w := range d.Stopwords {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if _, ok := seenStop[w]; ok {
				continue
			}
			seenStop[w] = struct{}{}
			out.Stopwords = append(out.Stopwords, w)
		}
	}
	sort.Strings(out.Stopwords)
	if out.Denylist == nil {
		out.Denylist = []Entry{}
	}
	if out.Stopwords == nil {
		out.Stopwords = []string{}
	}
	return out
}
