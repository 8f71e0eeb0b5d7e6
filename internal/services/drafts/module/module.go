// Package module wires drafts into the API using modkit
package module

import (
	"context"
	"strings"

	modkit "scopetrack/internal/modkit"
	"scopetrack/internal/modkit/httpkit"
	"scopetrack/internal/platform/config"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/platform/store/fs"
	"scopetrack/internal/services/drafts/domain"
	draftshttp "scopetrack/internal/services/drafts/http"
	draftsrepo "scopetrack/internal/services/drafts/repo"
	draftssvc "scopetrack/internal/services/drafts/service"
)

// Options holds configuration for the drafts module
type Options struct {
	Backend string
	Dir     string
}

// FromConfig reads CORE_DRAFTS_ settings
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("CORE_DRAFTS_")
	return Options{
		Backend: dc.MayEnum("BACKEND", "fs", "fs", "pg"),
		Dir:     dc.MayString("DIR", "./data/drafts"),
	}
}

// Ports exposed by the drafts module
type Ports struct {
	Drafts domain.ServicePort
}

// Module implements the drafts module
type Module struct {
	modkit.Base
	ports Ports
}

// NewService opens the configured backend and builds the draft service
func NewService(ctx context.Context, deps modkit.Deps, o Options) (*draftssvc.Svc, error) {
	if strings.EqualFold(o.Backend, "pg") {
		if deps.PG == nil {
			return nil, perr.Unavailablef("drafts: pg backend selected but postgres is disabled")
		}
		if err := draftsrepo.EnsureSchema(ctx, deps.PG); err != nil {
			return nil, err
		}
		return draftssvc.New(draftsrepo.NewPGStore(deps.PG, draftsrepo.NewPG())), nil
	}
	files, err := fs.Open(o.Dir)
	if err != nil {
		return nil, err
	}
	return draftssvc.New(draftsrepo.NewFS(files)), nil
}

// New constructs the drafts module; it panics when the store cannot be opened
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	svc, err := NewService(context.Background(), deps, o)
	if err != nil {
		logger.Named("drafts").Panic().Err(err).Str("backend", o.Backend).Msg("draft store unavailable")
	}

	defaults := []modkit.Option{modkit.WithName("drafts"), modkit.WithPrefix("/drafts")}
	return &Module{
		Base:  modkit.NewBase(func(r httpkit.Router) { draftshttp.Register(r, svc) }, append(defaults, opts...)...),
		ports: Ports{Drafts: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
