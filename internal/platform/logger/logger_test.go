package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	kit "scopetrack/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		" DEBUG ":  zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var m map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &m); err != nil {
		t.Fatalf("decode %q: %v", lines[len(lines)-1], err)
	}
	return m
}

func TestRequestScopedFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Format: "json", Level: "debug", Service: "scopetrack-api", Writer: &buf,
		StaticFields: map[string]string{"build": "test"}})

	ctx := WithRequest(context.Background(), "req-1", "")
	ctx = WithRequest(ctx, "", "main_st")
	For(ctx, "reconcile").Info().Msg("done")

	m := lastLine(t, &buf)
	want := map[string]string{
		"request_id": "req-1", "project": "main_st", "component": "reconcile",
		"service": "scopetrack-api", "build": "test", "message": "done",
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s = %v, want %q", k, m[k], v)
		}
	}

	Named("api").Debug().Msg("named")
	if m := lastLine(t, &buf); m["component"] != "api" {
		t.Fatalf("named component = %v", m["component"])
	}

	C(context.Background()).Info().Msg("bare")
	if m := lastLine(t, &buf); m["request_id"] != nil || m["message"] != "bare" {
		t.Fatalf("bare line = %v", m)
	}
}

func TestNewConsoleAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: "warn", Writer: &buf, Component: "ingest"})
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line leaked at warn level: %q", out)
	}
	kit.MustContain(t, out, "shown")
	kit.MustContain(t, out, "component=")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "scopetrack-reconcile")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	o := FromEnv()
	if o.Level != "warn" || o.Format != "json" || o.Service != "scopetrack-reconcile" || !o.WithCaller || o.SampleEvery != 5 {
		t.Fatalf("FromEnv = %+v", o)
	}
}
