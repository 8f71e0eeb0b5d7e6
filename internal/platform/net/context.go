// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyProject ctxKey = "project"

// WithRequest annotates context with the request id and normalized project key
func WithRequest(ctx context.Context, reqID, project string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if project != "" {
		ctx = context.WithValue(ctx, keyProject, project)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Project returns the normalized project key on the context if present
func Project(ctx context.Context) string {
	if v, ok := ctx.Value(keyProject).(string); ok {
		return v
	}
	return ""
}
