package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "scopetrack/internal/platform/net/http"
	"scopetrack/internal/services/drafts/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct{ got map[string]string }

func (f *fakeSvc) Get(_ context.Context, id string) (domain.Draft, error) {
	return domain.Draft{ProjectID: id, Fields: map[string]string{}}, nil
}

func (f *fakeSvc) Put(_ context.Context, id string, fields map[string]string) (domain.Draft, error) {
	f.got = fields
	return domain.Draft{ProjectID: id, Fields: fields}, nil
}

func newRouter(svc domain.ServicePort) *chi.Mux {
	m := chi.NewRouter()
	r := phttp.AdaptChi(m)
	r.Route("/drafts", func(sr phttp.Router) { Register(sr, svc) })
	return m
}

func TestGetAndPut(t *testing.T) {
	svc := &fakeSvc{}
	m := newRouter(svc)

	rr := httptest.NewRecorder()
	m.ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, "/drafts/Main%20St", nil))
	if rr.Code != stdhttp.StatusOK || !strings.Contains(rr.Body.String(), `"project_id":"main_st"`) {
		t.Fatalf("get = %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPut, "/drafts/p1", strings.NewReader(`{"fields":{"crew_notes":"Two on site"}}`))
	req.Header.Set("Content-Type", "application/json")
	m.ServeHTTP(rr, req)
	if rr.Code != stdhttp.StatusOK || svc.got["crew_notes"] != "Two on site" {
		t.Fatalf("put = %d %s", rr.Code, rr.Body.String())
	}
}

func TestPut_UnknownFieldRejected(t *testing.T) {
	m := newRouter(&fakeSvc{})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(stdhttp.MethodPut, "/drafts/p1", strings.NewReader(`{"fields":{"weather":"rain"}}`))
	req.Header.Set("Content-Type", "application/json")
	m.ServeHTTP(rr, req)
	if rr.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("put unknown field = %d %s", rr.Code, rr.Body.String())
	}
}
