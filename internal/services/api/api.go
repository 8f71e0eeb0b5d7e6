// Package api provides the HTTP API for the application
package api

import (
	"scopetrack/internal/platform/config"
	"scopetrack/internal/platform/logger"
	phttp "scopetrack/internal/platform/net/http"
	"scopetrack/internal/platform/net/middleware"
	"scopetrack/internal/platform/store"

	"scopetrack/internal/modkit"
	"scopetrack/internal/modkit/httpkit"
	"scopetrack/internal/modkit/module"
	"scopetrack/internal/modkit/swaggerkit"

	metamod "scopetrack/internal/services/api/meta/module"
	logsmod "scopetrack/internal/services/dailylogs/module"
	draftsmod "scopetrack/internal/services/drafts/module"
	scopesmod "scopetrack/internal/services/scopes/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf // unprefixed root; modules pick their own CORE_* prefix
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// StackFromConfig reads CORE_API_ middleware settings
func StackFromConfig(cfg config.Conf) httpkit.StackOptions {
	ac := cfg.Prefix("CORE_API_")
	return httpkit.StackOptions{
		Timeout:     ac.MayDuration("TIMEOUT", 0),
		SlowRequest: ac.MayDuration("SLOW_REQUEST", 0),
		MaxInFlight: ac.MayInt("MAX_IN_FLIGHT", 0),
		CORSOrigins: ac.MayCSV("CORS_ORIGINS", nil),
	}
}

// DefaultMaxJSONBody caps JSON request bodies when CORE_API_MAX_JSON_BODY is unset
const DefaultMaxJSONBody = 1 << 20

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG, deps.CH = opt.Store.PG, opt.Store.CH
	}

	// scopes and drafts own ports that the daily log module consumes
	// uploads carry their own cap, JSON modules share one
	jsonLimit := modkit.WithMiddlewares(middleware.BodyLimit(
		int64(opt.Config.Prefix("CORE_API_").MayInt("MAX_JSON_BODY", DefaultMaxJSONBody))))

	scopes := scopesmod.New(deps)
	drafts := draftsmod.New(deps, jsonLimit)
	logs := logsmod.New(
		deps,
		module.MustPortsOf[scopesmod.Ports](scopes).Scopes,
		module.MustPortsOf[draftsmod.Ports](drafts).Drafts,
		jsonLimit,
	)

	mods := []module.Module{
		metamod.New(deps),
		scopes,
		drafts,
		logs,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(StackFromConfig(opt.Config)), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, swaggerkit.Options{
			Enabled:     opt.EnableSwagger,
			TitleSuffix: opt.Config.Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""),
		})
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
