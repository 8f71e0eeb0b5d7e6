// Package testkit holds small assertions and seam helpers shared by tests
package testkit

import (
	"strings"
	"sync"
	"testing"
)

// MustPanic fails t unless fn panics, and returns what it panicked with
func MustPanic(t testing.TB, fn func()) (recovered any) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
	return nil
}

// MustContain fails t when out lacks want; long output is cut to keep failures readable
func MustContain(t testing.TB, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	if len(out) > 2048 {
		out = out[:2048] + "...(truncated)"
	}
	t.Fatalf("output lacks %q:\n%s", want, out)
}

var seams sync.Mutex

// Serial holds a process-wide lock until t ends; tests that Swap package vars call it first
func Serial(t testing.TB) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}

// Swap sets *target to v until t ends
func Swap[T any](t testing.TB, target *T, v T) {
	t.Helper()
	old := *target
	*target = v
	t.Cleanup(func() { *target = old })
}
