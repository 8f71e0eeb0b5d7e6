package store

import (
	"context"
	"fmt"
	"time"

	"scopetrack/internal/platform/logger"
	chx "scopetrack/internal/platform/store/ch"
	"scopetrack/internal/platform/store/pg"
)

const (
	firstBackoff = 150 * time.Millisecond
	maxBackoff   = 2 * time.Second
)

func openPG(ctx context.Context, cfg Config, log logger.Logger) (TxRunner, error) {
	var opts []pg.Option
	if cfg.PG.LogSQL {
		opts = append(opts, pg.WithTracer(pg.Tracer(log)))
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		AppName:  cfg.AppName,
		MaxConns: cfg.PG.MaxConns,
		Slow:     cfg.PG.SlowQuery,
	}, opts...)
	if err != nil {
		return nil, err
	}
	// the pool is pinged directly so boot retries stay out of the sql trace
	if err := waitReady(ctx, p.Pool.Ping, cfg.PG.ConnectRetries, cfg.PG.PingTimeout); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// waitReady pings until success with doubling backoff capped at maxBackoff
func waitReady(ctx context.Context, ping func(context.Context) error, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = 20
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	var err error
	backoff := firstBackoff
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
	return fmt.Errorf("not ready after %d attempts: %w", attempts, err)
}

// openCH connects lazily; the first ping happens in Guard or on first use
func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.URL, Role: cfg.Role, Tag: cfg.Tag})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
