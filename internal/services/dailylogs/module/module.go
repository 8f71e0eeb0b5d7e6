// Package module wires daily log reconciliation into the API using modkit
package module

import (
	"context"

	modkit "scopetrack/internal/modkit"
	"scopetrack/internal/modkit/httpkit"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/services/dailylogs/domain"
	logshttp "scopetrack/internal/services/dailylogs/http"
	logsrepo "scopetrack/internal/services/dailylogs/repo"
	logssvc "scopetrack/internal/services/dailylogs/service"
	draftsdomain "scopetrack/internal/services/drafts/domain"
)

// Ports exposed by the daily log module
type Ports struct {
	Logs domain.ServicePort
}

// Module implements the daily log module
type Module struct {
	modkit.Base
	ports Ports
}

// draftSaver adapts the drafts port to the autofill contract
type draftSaver struct{ drafts draftsdomain.ServicePort }

func (d draftSaver) Save(ctx context.Context, projectID string, fields map[string]string) error {
	_, err := d.drafts.Put(ctx, projectID, fields)
	return err
}

// NewService builds the daily log service; drafts may be nil
func NewService(ctx context.Context, deps modkit.Deps, o Options, scopes domain.ScopeLoader, drafts draftsdomain.ServicePort) (*logssvc.Svc, error) {
	engine, err := o.Engine()
	if err != nil {
		return nil, err
	}
	d := logssvc.Deps{Workers: o.Workers}
	if drafts != nil {
		d.Drafts = draftSaver{drafts: drafts}
	}
	if o.HistoryEnabled && deps.CH != nil {
		h := logsrepo.NewHistory(deps.CH)
		if err := h.EnsureSchema(ctx); err != nil {
			logger.Named("dailylogs").Warn().Err(err).Msg("snapshot history disabled")
		} else {
			d.History = h
		}
	}
	return logssvc.New(scopes, engine, d), nil
}

// New constructs the daily log module; it panics on invalid matcher settings
func New(deps modkit.Deps, scopes domain.ScopeLoader, drafts draftsdomain.ServicePort, opts ...modkit.Option) modkit.Module {
	svc, err := NewService(context.Background(), deps, FromConfig(deps.Cfg), scopes, drafts)
	if err != nil {
		logger.Named("dailylogs").Panic().Err(err).Msg("reconcile engine misconfigured")
	}

	defaults := []modkit.Option{modkit.WithName("dailylogs"), modkit.WithPrefix("/logs")}
	return &Module{
		Base:  modkit.NewBase(func(r httpkit.Router) { logshttp.Register(r, svc) }, append(defaults, opts...)...),
		ports: Ports{Logs: svc},
	}
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
