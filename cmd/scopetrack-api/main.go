// @title         Scopetrack API
// @version       0.1.0
// @description   Scope checklists, daily log reconciliation and progress reports
// @BasePath      /api/v1

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"scopetrack/internal/core/version"
	"scopetrack/internal/modkit/repokit"
	"scopetrack/internal/platform/config"
	"scopetrack/internal/platform/logger"
	phttp "scopetrack/internal/platform/net/http"
	"scopetrack/internal/platform/net/middleware"
	"scopetrack/internal/platform/store"

	"scopetrack/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP (CORE_API_*); modules read their own prefixes from root
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	// bring up logging early
	l := logger.Get()

	// postgres (DB_PG_*) and clickhouse (DB_CH_*) are optional; the fs stores serve scopes and drafts without them
	st, err := store.Open(ctx, store.ConfigFromEnv(root, "api", version.Info().Version), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	repokit.MustGuard(ctx, st)
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT); /health answers before routing
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) {
		m.Use(middleware.Heartbeat("/health"))
	})

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", false),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run until SIGINT or SIGTERM
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
