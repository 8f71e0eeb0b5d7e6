package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"scopetrack/internal/modkit/httpkit"
	phttp "scopetrack/internal/platform/net/http"
	kit "scopetrack/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

type testModule struct {
	Base
}

func (m *testModule) Ports() any { return nil }

var _ Module = (*testModule)(nil)

func TestBaseMountsRoutesUnderPrefix(t *testing.T) {
	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "drafts")
			next.ServeHTTP(w, r)
		})
	}
	m := &testModule{Base: NewBase(
		func(r httpkit.Router) {
			r.Get("/own", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("own")) })
		},
		WithName("drafts"),
		WithPrefix("drafts/"),
		WithMiddlewares(tag),
		WithRoutes(func(r httpkit.Router) {
			r.Get("/extra", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("extra")) })
		}),
	)}

	if m.Name() != "drafts" || m.Prefix() != "/drafts" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}

	r := phttp.AdaptChi(chi.NewRouter())
	m.MountRoutes(r)
	for path, want := range map[string]string{"/drafts/own": "own", "/drafts/extra": "extra"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Body.String() != want || rec.Header().Get("X-Module") != "drafts" {
			t.Fatalf("GET %s = %d %q mw=%q", path, rec.Code, rec.Body.String(), rec.Header().Get("X-Module"))
		}
	}
}

func TestBaseWithoutNamePanics(t *testing.T) {
	m := &testModule{Base: NewBase(nil)}
	kit.MustPanic(t, func() { _ = m.Name() })
}
