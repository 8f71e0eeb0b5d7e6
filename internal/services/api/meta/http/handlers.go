// Package http serves the meta endpoints: liveness, readiness, build info and matcher settings
package http

import (
	"context"
	"net/http"
	"time"

	"scopetrack/internal/core/version"
	"scopetrack/internal/modkit/httpkit"

	"golang.org/x/sync/errgroup"
)

// ReadyTimeout bounds all readiness pings together
const ReadyTimeout = 2 * time.Second

// Pinger is satisfied by store backends that can report readiness
type Pinger interface {
	Ping(context.Context) error
}

// Deps are the handler dependencies; PG and CH are nil when disabled
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          any
	CH          any
	Matcher     MatcherResponse
}

type handlers struct {
	deps  Deps
	probe []probe
}

type probe struct {
	name string
	dep  any
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, probe: []probe{{"pg", d.PG}, {"ch", d.CH}}}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/matcher", h.matcher)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"scopetrack-api"`
	Now     string `json:"now"     example:"2026-05-04T13:05:00Z"`
}

// ReadyCheck is one backend's readiness
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok unless an enabled backend failed its ping
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// ServiceResponse describes the running process
type ServiceResponse struct {
	Name    string `json:"name"    example:"scopetrack-api"`
	Started string `json:"started" example:"2026-05-04T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// MatcherResponse reports the active matching settings
type MatcherResponse struct {
	Threshold        float64 `json:"threshold"          example:"0.5"`
	PartialThreshold float64 `json:"partial_threshold"  example:"0.3"`
	Window           int     `json:"window"             example:"3"`
	OutOfScopeLimit  int     `json:"out_of_scope_limit" example:"0"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Now: time.Now().UTC().Format(time.RFC3339)}, nil
}

// @Summary Readiness of the enabled storage backends
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), ReadyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, len(h.probe))}
	var g errgroup.Group
	for i, p := range h.probe {
		g.Go(func() error {
			out.Checks[i] = check(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	for _, c := range out.Checks {
		if c.Status == "fail" {
			out.Status = "fail"
			return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
		}
	}
	return out, nil
}

func check(ctx context.Context, p probe) ReadyCheck {
	pg, ok := p.dep.(Pinger)
	if !ok {
		return ReadyCheck{Name: p.name, Status: "skipped"}
	}
	if err := pg.Ping(ctx); err != nil {
		return ReadyCheck{Name: p.name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: p.name, Status: "ok"}
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Active matching thresholds
// @Tags Meta
// @Produce json
// @Success 200 {object} MatcherResponse
// @Router /meta/matcher [get]
func (h *handlers) matcher(_ *http.Request) (any, error) { return h.deps.Matcher, nil }
