package pg

import (
	"context"
	"strings"
	"time"

	"scopetrack/internal/platform/logger"
	pnet "scopetrack/internal/platform/net"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement; arguments are never recorded
type QueryEvent struct {
	SQL     string
	Elapsed time.Duration
	Err     error
	Slow    bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// TracerFunc adapts a function to QueryTracer
type TracerFunc func(ctx context.Context, ev QueryEvent)

// OnQuery calls f
func (f TracerFunc) OnQuery(ctx context.Context, ev QueryEvent) { f(ctx, ev) }

// Tracer logs statements at debug and slow or failed ones at warn
// The child logger is forced to debug since it only exists when DB_PG_LOG_SQL is on
func Tracer(base logger.Logger) QueryTracer {
	l := base.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()
	return TracerFunc(func(ctx context.Context, ev QueryEvent) {
		e := l.Debug()
		if ev.Slow || ev.Err != nil {
			e = l.Warn()
		}
		if id := pnet.RequestID(ctx); id != "" {
			e = e.Str("request_id", id)
		}
		if p := pnet.Project(ctx); p != "" {
			e = e.Str("project", p)
		}
		e.Float64("elapsed_ms", float64(ev.Elapsed.Microseconds())/1000).
			Bool("slow", ev.Slow).
			Str("sql", compact(ev.SQL)).
			Err(ev.Err).
			Msg("pg query")
	})
}

func compact(sql string) string { return strings.Join(strings.Fields(sql), " ") }
