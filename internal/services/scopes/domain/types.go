// Package domain holds the scope store contracts and transport types
package domain

import (
	"context"

	"scopetrack/internal/core/checklist"
)

// Store persists one checklist per normalized project key
// Load of an unknown key returns an empty checklist and no error
type Store interface {
	Save(ctx context.Context, key string, c checklist.Checklist) error
	Load(ctx context.Context, key string) (checklist.Checklist, error)
}

// ServicePort is the scope workflow surface used by handlers, CLIs and other modules
type ServicePort interface {
	Upload(ctx context.Context, projectID string, data []byte, hint string) (Scope, error)
	Replace(ctx context.Context, projectID string, items []string) (Scope, error)
	Get(ctx context.Context, projectID string) (Scope, error)
	Checklist(ctx context.Context, projectID string) (checklist.Checklist, error)
}

// Scope is the checklist as returned to callers
type Scope struct {
	ProjectID string   `json:"project_id"`
	Items     []string `json:"items"`
	Count     int      `json:"count"`
}

// ScopeOf builds the transport view of c
func ScopeOf(key string, c checklist.Checklist) Scope {
	return Scope{ProjectID: key, Items: c.Texts(), Count: c.Len()}
}

// ReplaceInput is the body of PUT /scopes/{project}
type ReplaceInput struct {
	Items []string `json:"items" validate:"required,max=5000,dive,max=2000"`
}
