// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"scopetrack/internal/core/version"
	modkit "scopetrack/internal/modkit"
	"scopetrack/internal/modkit/httpkit"
	"scopetrack/internal/platform/config"
	logsmod "scopetrack/internal/services/dailylogs/module"

	metahttp "scopetrack/internal/services/api/meta/http"
)

// Module serves health, readiness and build info
type Module struct {
	modkit.Base
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	started := time.Now()
	defaults := []modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}
	return &Module{Base: modkit.NewBase(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: version.Info().Service,
			StartedAt:   started,
			PG:          deps.PG,
			CH:          deps.CH,
			Matcher:     matcherOf(deps.Cfg),
		})
	}, append(defaults, opts...)...)}
}

// Ports is empty; nothing composes against meta
func (m *Module) Ports() any { return nil }

func matcherOf(cfg config.Conf) metahttp.MatcherResponse {
	o := logsmod.FromConfig(cfg)
	return metahttp.MatcherResponse{
		Threshold:        o.Match.Threshold,
		PartialThreshold: o.Match.PartialThreshold,
		Window:           o.Match.Window,
		OutOfScopeLimit:  o.OutOfScopeLimit,
	}
}
