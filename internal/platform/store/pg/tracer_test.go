package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pnet "scopetrack/internal/platform/net"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	got := compact("  INSERT INTO project_scopes\n\t(project_key, items)\r\n VALUES ($1, $2)  ")
	if got != "INSERT INTO project_scopes (project_key, items) VALUES ($1, $2)" {
		t.Fatalf("compact = %q", got)
	}
}

func TestTracerLevels(t *testing.T) {
	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	emit := func(ctx context.Context, ev QueryEvent) map[string]any {
		t.Helper()
		buf.Reset()
		tr.OnQuery(ctx, ev)
		var m map[string]any
		if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
			t.Fatalf("decode %q: %v", buf.String(), err)
		}
		return m
	}

	ctx := pnet.WithRequest(context.Background(), "req-9", "main_st")
	m := emit(ctx, QueryEvent{SQL: "SELECT\n 1", Elapsed: 1500 * time.Microsecond})
	if m["level"] != "debug" || m["sql"] != "SELECT 1" || m["elapsed_ms"] != 1.5 || m["component"] != "pg" {
		t.Fatalf("debug line = %v", m)
	}
	if m["request_id"] != "req-9" || m["project"] != "main_st" {
		t.Fatalf("request fields = %v", m)
	}

	if m := emit(context.Background(), QueryEvent{SQL: "SELECT 1", Slow: true}); m["level"] != "warn" {
		t.Fatalf("slow = %v", m)
	}
	if m := emit(context.Background(), QueryEvent{SQL: "SELECT 1", Err: errors.New("boom")}); m["level"] != "warn" || m["error"] != "boom" {
		t.Fatalf("error = %v", m)
	}
}
