package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "scopetrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestDecorate(t *testing.T) {
	spec := map[string]any{
		"swagger": "2.0",
		"info":    map[string]any{"title": "scopetrack API"},
		"paths": map[string]any{
			"/logs/{project}/reconcile": map[string]any{
				"post": map[string]any{"responses": map[string]any{
					"200": map[string]any{"description": "ok"},
					"422": map[string]any{"description": "bad log"},
				}},
			},
			"/meta/health": map[string]any{"get": map[string]any{}},
		},
	}
	decorate(spec, Options{BaseURL: "/api/v1", TitleSuffix: "staging"})

	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil {
		t.Fatalf("version not lifted: %v / %v", spec["openapi"], spec["swagger"])
	}
	if spec["info"].(map[string]any)["title"] != "scopetrack API staging" {
		t.Fatalf("title = %v", spec["info"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != "/api/v1" {
		t.Fatalf("servers = %v", servers)
	}
	schemas := spec["components"].(map[string]any)["schemas"].(map[string]any)
	if _, ok := schemas["ErrorResponse"]; !ok {
		t.Fatal("ErrorResponse schema missing")
	}

	paths := spec["paths"].(map[string]any)
	post := paths["/logs/{project}/reconcile"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if post["422"].(map[string]any)["description"] != "bad log" {
		t.Fatal("declared response overwritten")
	}
	for _, code := range []string{"400", "500", "503"} {
		if _, ok := post[code]; !ok {
			t.Fatalf("reconcile missing %s", code)
		}
	}
	health := paths["/meta/health"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	if len(health) != 4 {
		t.Fatalf("health responses = %v", health)
	}
}

func TestDecorateKeepsOAS30(t *testing.T) {
	spec := map[string]any{"openapi": "3.1.0", "servers": []any{"keep"}}
	decorate(spec, Options{BaseURL: "/api/v1"})
	if spec["openapi"] != "3.0.3" || spec["servers"].([]any)[0] != "keep" {
		t.Fatalf("spec = %v", spec)
	}
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served: %d", rec.Code)
	}

	mux = chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{Enabled: true})

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect || rec.Header().Get("Location") != "/api/docs/" {
		t.Fatalf("redirect: %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("doc.json: %v (%s)", err, rec.Body.String())
	}
	if spec["openapi"] != "3.0.3" || !strings.Contains(rec.Body.String(), `"url":"/api/v1"`) {
		t.Fatalf("doc.json = %s", rec.Body.String())
	}
}
