package middleware_test

import (
	"compress/flate"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scopetrack/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDisabledWrappersAreIdentity(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Deadline(); ok {
			t.Error("zero timeout set a deadline")
		}
		b, _ := io.ReadAll(r.Body)
		_, _ = w.Write(b)
	})
	h := middleware.Throttle(0)(middleware.Timeout(0)(middleware.BodyLimit(0)(next)))
	body := strings.Repeat("log line\n", 512)
	rec := serve(h, httptest.NewRequest(http.MethodPost, "/logs/reconcile", strings.NewReader(body)))
	if rec.Body.String() != body {
		t.Fatalf("body changed: %d bytes", rec.Body.Len())
	}
}

func TestBodyLimit(t *testing.T) {
	var readErr error
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
		if readErr != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
		}
	})
	h := middleware.BodyLimit(16)(next)

	serve(h, httptest.NewRequest(http.MethodPut, "/drafts", strings.NewReader(`{"fields":{}}`)))
	if readErr != nil {
		t.Fatalf("small body rejected: %v", readErr)
	}

	rec := serve(h, httptest.NewRequest(http.MethodPut, "/drafts", strings.NewReader(`{"fields":{"notes":"poured slab"}}`)))
	if readErr == nil || rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body: code=%d err=%v", rec.Code, readErr)
	}
}

func TestTimeoutSetsDeadline(t *testing.T) {
	var ok bool
	h := middleware.Timeout(time.Minute)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, ok = r.Context().Deadline()
	}))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	if !ok {
		t.Fatal("no deadline on request context")
	}
}

func TestCompressGzipsLargeText(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, strings.Repeat("✅ Pour concrete pad\n", 256))
	}))
	req := httptest.NewRequest(http.MethodGet, "/logs/report", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	if enc := serve(h, req).Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q", enc)
	}
}

func TestCORSDefaultsExposeDisposition(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://site.example"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	pre := httptest.NewRequest(http.MethodOptions, "/scopes/document", nil)
	pre.Header.Set("Origin", "https://site.example")
	pre.Header.Set("Access-Control-Request-Method", "POST")
	pre.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := serve(h, pre)
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://site.example" {
		t.Fatalf("preflight headers: %v", rec.Header())
	}

	get := httptest.NewRequest(http.MethodGet, "/logs/report", nil)
	get.Header.Set("Origin", "https://site.example")
	if exp := serve(h, get).Header().Get("Access-Control-Expose-Headers"); !strings.Contains(exp, "Content-Disposition") {
		t.Fatalf("exposed headers = %q", exp)
	}
}

func TestRequestIDNoCacheHeartbeat(t *testing.T) {
	var rid string
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) { rid = chimw.GetReqID(r.Context()) })
	h := middleware.Heartbeat("/ping")(middleware.RequestID()(middleware.RealIP()(middleware.NoCache()(next))))

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/scopes", nil))
	if rid == "" || rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("rid=%q cache=%q", rid, rec.Header().Get("Cache-Control"))
	}

	rid = ""
	if rec := serve(h, httptest.NewRequest(http.MethodGet, "/ping", nil)); rec.Code != http.StatusOK || rid != "" {
		t.Fatalf("heartbeat reached handler or failed: %d", rec.Code)
	}
}
