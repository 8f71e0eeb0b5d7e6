package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops what extracted documents smuggle into text: C0 controls other
// than tab, CR and LF, DEL, C1 controls, and invalid UTF-8
// line structure survives so the segmenter can still split on it
func Sanitize(s string) string {
	if !strings.ContainsFunc(s, junk) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if junk(r) {
			return -1
		}
		return r
	}, s)
}

// junk also matches U+FFFD, which is what invalid bytes decode to
func junk(r rune) bool {
	switch {
	case r == '\n', r == '\r', r == '\t':
		return false
	case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f, r == utf8.RuneError:
		return true
	}
	return false
}
