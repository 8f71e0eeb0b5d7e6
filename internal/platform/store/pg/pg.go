// Package pg opens the pgx pool behind the sql adapter
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the pool needs from store.PGConfig
type Config struct {
	URL      string
	AppName  string // reported as application_name
	MaxConns int32
	Slow     time.Duration // statements at or over this are traced as slow; zero disables
}

// PG is an open pool plus its tracing settings
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	Slow   time.Duration
}

// Option tunes Open
type Option func(*pgxpool.Config, *PG)

// WithTracer installs a statement tracer
func WithTracer(t QueryTracer) Option {
	return func(_ *pgxpool.Config, p *PG) { p.Tracer = t }
}

// WithPoolConfig edits the parsed pool config before the pool is created
func WithPoolConfig(fn func(*pgxpool.Config)) Option {
	return func(pc *pgxpool.Config, _ *PG) { fn(pc) }
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and creates the pool; connections are made lazily
func Open(ctx context.Context, cfg Config, opts ...Option) (*PG, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}

	p := &PG{Slow: cfg.Slow}
	for _, o := range opts {
		o(pc, p)
	}
	if p.Pool, err = newPool(ctx, pc); err != nil {
		return nil, err
	}
	return p, nil
}

// Close closes the pool; safe on nil
func (p *PG) Close() {
	if p == nil || p.Pool == nil {
		return
	}
	p.Pool.Close()
}
