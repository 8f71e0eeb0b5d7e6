package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"scopetrack/internal/platform/config"
	phttp "scopetrack/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_DefaultsAndEnv(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("TEST_SRV_UNSET_"))
	if srv.Addr() != ":4000" {
		t.Fatalf("default addr = %q", srv.Addr())
	}

	t.Setenv("TEST_SRV_PORT", ":12345")
	optCalled := false
	srv = phttp.NewServer(config.New().Prefix("TEST_SRV_"), func(*chi.Mux) { optCalled = true })
	if srv.Addr() != ":12345" || !optCalled {
		t.Fatalf("addr=%q optCalled=%v", srv.Addr(), optCalled)
	}

	r := srv.Router()
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("ping = %d %q", rec.Code, rec.Body.String())
	}
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("TEST_SRV_CANCEL_"))
	srv.Router().Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "pong") })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/ping")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServer_ShutdownEndsServe(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("TEST_SRV_SHUT_"))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), ln) }()
	time.Sleep(20 * time.Millisecond)

	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestServer_RunListenError(t *testing.T) {
	t.Setenv("TEST_SRV_BAD_PORT", "127.0.0.1:abc")
	srv := phttp.NewServer(config.New().Prefix("TEST_SRV_BAD_"))
	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
