// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	"mime"
	stdhttp "net/http"
	"strconv"

	pnet "scopetrack/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope = pnet.Wire

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.Error(err, pnet.RequestID(r.Context()))
	JSON(w, status, body)
}

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Attachment is a non-JSON body written as-is, e.g. an xlsx export
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(stdhttp.StatusNoContent)
		return
	}

	reqID := pnet.RequestID(r.Context())

	switch b := resp.Body.(type) {
	case error:
		st, env := pnet.Error(b, reqID)
		JSON(w, st, env)
	case Attachment:
		w.Header().Set("Content-Type", b.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(b.Data)))
		if b.Name != "" {
			w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": b.Name}))
		}
		w.WriteHeader(status)
		_, _ = w.Write(b.Data)
	default:
		st, env := pnet.Status(status, resp.Body, reqID)
		JSON(w, st, env)
	}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created returns a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent returns a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// File returns a 200 response carrying raw bytes
func File(name, contentType string, data []byte) Response {
	return Response{Status: stdhttp.StatusOK, Body: Attachment{Name: name, ContentType: contentType, Data: data}}
}

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
