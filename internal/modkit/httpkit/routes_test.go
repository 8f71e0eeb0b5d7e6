package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "scopetrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func header(name, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add(name, value)
			next.ServeHTTP(w, r)
		})
	}
}

func TestMountUnderScopesMiddleware(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	MountUnder(r, "/logs", []func(http.Handler) http.Handler{header("X-Mod", "logs")}, func(sub Router) {
		Get(sub, "/history", func(*http.Request) (any, error) { return []string{}, nil })
	})
	r.Get("/other", func(w http.ResponseWriter, _ *http.Request) {})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/logs/history", nil))
	if rec.Code != http.StatusOK || rec.Header().Get("X-Mod") != "logs" {
		t.Fatalf("mounted route: %d %v", rec.Code, rec.Header())
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	if rec.Header().Get("X-Mod") != "" {
		t.Fatal("module middleware leaked outside its prefix")
	}
}

func TestMountAPIV1(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	MountAPIV1(r, nil, func(api Router) {
		MountUnder(api, "/meta", nil, func(sub Router) {
			Get(sub, "/version", func(*http.Request) (any, error) { return "dev", nil })
		})
	})

	for path, want := range map[string]int{
		"/api/v1/meta/version": http.StatusOK,
		"/meta/version":        http.StatusNotFound,
		"/api/v2/meta/version": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Fatalf("GET %s = %d, want %d", path, rec.Code, want)
		}
	}
}
