// Package logger owns the process zerolog logger and its request-scoped children
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"scopetrack/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the logging type handed around the codebase
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level        string // trace..panic; unknown values mean info
	Format       string // console or json
	Service      string
	Component    string
	Writer       io.Writer // stdout when nil
	WithCaller   bool
	SampleEvery  int // keep one event in N when > 1
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw reader, which cannot log
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "info"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.Bool("CALLER", false),
		SampleEvery: env.Int("SAMPLE_EVERY", 0),
	}
}

var (
	mu   sync.RWMutex
	root *Logger
)

// New builds a logger from opt without touching the process root
func New(opt Options) Logger {
	w := opt.Writer
	if w == nil {
		w = os.Stdout
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	b := zerolog.New(w).Level(ParseLevel(opt.Level)).With().Timestamp()
	if bi, ok := debug.ReadBuildInfo(); ok {
		b = b.Str("go_version", bi.GoVersion)
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			b = b.Str(k, v)
		}
	}
	for k, v := range opt.StaticFields {
		b = b.Str(k, v)
	}
	if opt.WithCaller {
		b = b.Caller()
	}

	l := b.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return l
}

// Init replaces the process root logger; the first Get calls it with FromEnv
func Init(opt Options) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := New(opt)
	mu.Lock()
	root = &l
	mu.Unlock()
}

// Get returns the process root logger
func Get() *Logger {
	mu.RLock()
	l := root
	mu.RUnlock()
	if l != nil {
		return l
	}
	mu.Lock()
	defer mu.Unlock()
	if root == nil {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano
		n := New(FromEnv())
		root = &n
	}
	return root
}

// ParseLevel maps a level name to zerolog; "warning" is accepted and anything unknown is info
func ParseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

type reqFields struct{ requestID, project string }

type ctxKey struct{}

// WithRequest records the request id and project on ctx; empty values keep what is already there
func WithRequest(ctx context.Context, reqID, project string) context.Context {
	f, _ := ctx.Value(ctxKey{}).(reqFields)
	if reqID != "" {
		f.requestID = reqID
	}
	if project != "" {
		f.project = project
	}
	return context.WithValue(ctx, ctxKey{}, f)
}

// C returns a root child carrying the request fields found on ctx
func C(ctx context.Context) *Logger {
	f, ok := ctx.Value(ctxKey{}).(reqFields)
	if !ok {
		return Get()
	}
	b := Get().With()
	if f.requestID != "" {
		b = b.Str("request_id", f.requestID)
	}
	if f.project != "" {
		b = b.Str("project", f.project)
	}
	l := b.Logger()
	return &l
}

// For is C tagged with a component
func For(ctx context.Context, component string) *Logger {
	l := C(ctx).With().Str("component", component).Logger()
	return &l
}

// Named returns a root child tagged with a component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
