// Package http provides http transport for scopes
package http

import (
	stdhttp "net/http"
	"strings"

	"scopetrack/internal/modkit/httpkit"
	"scopetrack/internal/services/scopes/domain"
)

// UploadField is the multipart field carrying the scope document
const UploadField = "file"

// Register mounts scope endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort, maxUpload int64) {
	h := &handlers{svc: s, maxUpload: maxUpload}

	r.Route("/{project}", func(pr httpkit.Router) {
		pr.Use(httpkit.ProjectCtx)

		httpkit.Get(pr, "/", h.get)
		httpkit.PutJSON(pr, "/", h.replace)
		httpkit.Post(pr, "/document", h.upload)
	})
}

type handlers struct {
	svc       domain.ServicePort
	maxUpload int64
}

// @Summary Get a project's scope checklist
// @Tags Scopes
// @Produce json
// @Param project path string true "Project id"
// @Success 200 {object} domain.Scope "ok"
// @Router /scopes/{project} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), httpkit.Project(r))
}

// @Summary Replace a project's scope checklist
// @Tags Scopes
// @Accept json
// @Produce json
// @Param project path string true "Project id"
// @Param payload body domain.ReplaceInput true "Items"
// @Success 200 {object} domain.Scope "ok"
// @Failure 422 {object} httpkit.Envelope "invalid items"
// @Router /scopes/{project} [put]
func (h *handlers) replace(r *stdhttp.Request, in domain.ReplaceInput) (any, error) {
	return h.svc.Replace(r.Context(), httpkit.Project(r), in.Items)
}

// @Summary Upload a scope document
// @Description Extracts text from a PDF, DOCX, XLSX, PPTX or text file, segments it into items and replaces the checklist
// @Tags Scopes
// @Accept multipart/form-data
// @Produce json
// @Param project path string true "Project id"
// @Param file formData file true "Scope document"
// @Param format formData string false "Format hint (pdf, docx, xlsx, pptx, txt)"
// @Success 201 {object} domain.Scope "created"
// @Failure 422 {object} httpkit.Envelope "unreadable document"
// @Router /scopes/{project}/document [post]
func (h *handlers) upload(r *stdhttp.Request) (any, error) {
	up, err := httpkit.FormFile(r, UploadField, h.maxUpload)
	if err != nil {
		return nil, err
	}
	scope, err := h.svc.Upload(r.Context(), httpkit.Project(r), up.Data, hintOf(up, r))
	if err != nil {
		return nil, err
	}
	return httpkit.Created(scope), nil
}

// hintOf prefers an explicit format, then the file name, then the part content type
func hintOf(up httpkit.Upload, r *stdhttp.Request) string {
	for _, h := range []string{up.Fields["format"], r.URL.Query().Get("format"), up.Name, up.ContentType} {
		if h = strings.TrimSpace(h); h != "" {
			return h
		}
	}
	return ""
}
