// Package module wires scopes into the API using modkit
package module

import (
	"context"
	"strings"

	"scopetrack/internal/core/extract"
	"scopetrack/internal/core/segment"
	modkit "scopetrack/internal/modkit"
	"scopetrack/internal/modkit/httpkit"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/platform/store/fs"
	"scopetrack/internal/services/scopes/domain"
	scopeshttp "scopetrack/internal/services/scopes/http"
	scopesrepo "scopetrack/internal/services/scopes/repo"
	scopessvc "scopetrack/internal/services/scopes/service"
)

// Ports exposed by the scopes module
type Ports struct {
	Scopes domain.ServicePort
}

// Module implements the scopes module
type Module struct {
	modkit.Base
	ports Ports
}

// NewStore opens the configured backend; the pg backend needs deps.PG
func NewStore(ctx context.Context, deps modkit.Deps, o Options) (domain.Store, error) {
	switch strings.ToLower(o.Backend) {
	case BackendPG:
		if deps.PG == nil {
			return nil, perr.Unavailablef("scopes: pg backend selected but postgres is disabled")
		}
		if err := scopesrepo.EnsureSchema(ctx, deps.PG); err != nil {
			return nil, err
		}
		return scopesrepo.NewPGStore(deps.PG, scopesrepo.NewPG()), nil
	default:
		files, err := fs.Open(o.Dir)
		if err != nil {
			return nil, err
		}
		return scopesrepo.NewFS(files), nil
	}
}

// NewService builds the scopes service with its store, extractor and segmenter
func NewService(ctx context.Context, deps modkit.Deps, o Options) (*scopessvc.Svc, error) {
	st, err := NewStore(ctx, deps, o)
	if err != nil {
		return nil, err
	}
	seg, err := segment.New(o.Segment)
	if err != nil {
		return nil, err
	}
	return scopessvc.New(st, extract.New(o.Extract), seg), nil
}

// New constructs the scopes module; it panics when the store cannot be opened
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	o := FromConfig(deps.Cfg)
	log := logger.Named("scopes")
	svc, err := NewService(context.Background(), deps, o)
	if err != nil {
		log.Panic().Err(err).Str("backend", o.Backend).Msg("scope store unavailable")
	}
	log.Info().Str("backend", o.Backend).Msg("scope store ready")

	defaults := []modkit.Option{modkit.WithName("scopes"), modkit.WithPrefix("/scopes")}
	return &Module{
		Base: modkit.NewBase(func(r httpkit.Router) {
			scopeshttp.Register(r, svc, o.MaxUpload)
		}, append(defaults, opts...)...),
		ports: Ports{Scopes: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
