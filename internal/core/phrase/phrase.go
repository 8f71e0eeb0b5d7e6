// Package phrase finds any of a fixed set of phrases inside normalized text
// Phrases and input are both run through normalize, so matching ignores case,
// punctuation and spacing differences
package phrase

import (
	"scopetrack/internal/core/normalize"
)

// Hit is one phrase occurrence in the normalized input
type Hit struct {
	Phrase string
	Start  int
	End    int
}

// Set is an immutable, concurrency safe phrase matcher
type Set struct {
	phrases []string
	ac      *automaton
}

// New compiles phrases; blank and duplicate phrases are ignored
func New(phrases ...string) *Set {
	s := &Set{ac: newAutomaton()}
	seen := make(map[string]struct{}, len(phrases))
	for _, p := range phrases {
		key := normalize.Text(p)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		s.ac.add([]byte(key), len(s.phrases))
		s.phrases = append(s.phrases, key)
	}
	s.ac.build()
	return s
}

// Len returns the number of compiled phrases
func (s *Set) Len() int { return len(s.phrases) }

// Phrases returns the normalized phrases in insertion order
func (s *Set) Phrases() []string { return append([]string(nil), s.phrases...) }

// Match returns the first phrase found in text
func (s *Set) Match(text string) (string, bool) {
	if len(s.phrases) == 0 {
		return "", false
	}
	var found string
	ok := false
	s.ac.scan([]byte(normalize.Text(text)), func(_, id int) bool {
		found, ok = s.phrases[id], true
		return false
	})
	return found, ok
}

// Contains reports whether any phrase occurs in text
func (s *Set) Contains(text string) bool {
	_, ok := s.Match(text)
	return ok
}

// FindAll returns every occurrence in order of end offset
// Offsets index the normalized form of text
func (s *Set) FindAll(text string) []Hit {
	if len(s.phrases) == 0 {
		return nil
	}
	var hits []Hit
	s.ac.scan([]byte(normalize.Text(text)), func(end, id int) bool {
		p := s.phrases[id]
		hits = append(hits, Hit{Phrase: p, Start: end - len(p), End: end})
		return true
	})
	return hits
}
