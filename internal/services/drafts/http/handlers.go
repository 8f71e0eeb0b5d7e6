// Package http provides http transport for drafts
package http

import (
	stdhttp "net/http"

	"scopetrack/internal/modkit/httpkit"
	"scopetrack/internal/services/drafts/domain"
)

// Register mounts draft endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	r.Route("/{project}", func(pr httpkit.Router) {
		pr.Use(httpkit.ProjectCtx)
		httpkit.Get(pr, "/", h.get)
		httpkit.PutJSON(pr, "/", h.put)
	})
}

type handlers struct{ svc domain.ServicePort }

// @Summary Get the autofill draft for a project
// @Tags Drafts
// @Produce json
// @Param project path string true "Project id"
// @Success 200 {object} domain.Draft "ok"
// @Router /drafts/{project} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Project(r))
}

// @Summary Replace the autofill draft for a project
// @Tags Drafts
// @Accept json
// @Produce json
// @Param project path string true "Project id"
// @Param payload body domain.PutInput true "Fields"
// @Success 200 {object} domain.Draft "ok"
// @Router /drafts/{project} [put]
func (h *handlers) put(r *stdhttp.Request, in domain.PutInput) (any, error) {
	return h.svc.Put(r.Context(), httpkit.Project(r), in.Fields)
}
