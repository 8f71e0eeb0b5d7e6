// Package http provides http transport for daily logs
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"

	"scopetrack/internal/core/progress"
	"scopetrack/internal/modkit/httpkit"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/services/dailylogs/domain"
)

// XLSXContentType is the media type of workbook responses
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Register mounts daily log endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	r.Route("/{project}", func(pr httpkit.Router) {
		pr.Use(httpkit.ProjectCtx)
		httpkit.PostJSON(pr, "/", h.submit)
		httpkit.Get(pr, "/history", h.history)
	})
}

type handlers struct{ svc domain.ServicePort }

// @Summary Reconcile a daily log against the project scope
// @Description Loads the stored checklist, reconciles the log, saves it as the draft and records a snapshot.
// @Description format=xlsx returns a workbook instead of JSON.
// @Tags Logs
// @Accept json
// @Produce json
// @Param project path string true "Project id"
// @Param payload body domain.SubmitInput true "Daily log fields"
// @Success 200 {object} domain.Result "ok"
// @Failure 422 {object} httpkit.Envelope "validation or matching error"
// @Failure 503 {object} httpkit.Envelope "store unavailable"
// @Router /logs/{project} [post]
func (h *handlers) submit(r *stdhttp.Request, in domain.SubmitInput) (any, error) {
	project := httpkit.Project(r)
	res, err := h.svc.Submit(r.Context(), project, in)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(in.Format, domain.FormatXLSX) {
		return res, nil
	}
	b, err := progress.Workbook(res.Report)
	if err != nil {
		return nil, err
	}
	return httpkit.File(project+"_progress.xlsx", XLSXContentType, b), nil
}

// @Summary Recent reconciliation snapshots for a project
// @Tags Logs
// @Produce json
// @Param project path string true "Project id"
// @Param limit query int false "Max rows (default 20, max 500)"
// @Success 200 {array} domain.Snapshot "ok"
// @Failure 503 {object} httpkit.Envelope "history disabled"
// @Router /logs/{project}/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.Validationf("limit must be a non negative integer"), "limit")
		}
		limit = n
	}
	return h.svc.History(r.Context(), httpkit.Project(r), limit)
}
