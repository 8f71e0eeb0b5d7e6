// Package domain holds the autofill draft contracts
package domain

import (
	"context"
	"time"
)

// Draft is the last daily form submitted for a project, used to prefill the next one
type Draft struct {
	ProjectID string            `json:"project_id"`
	Fields    map[string]string `json:"fields"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store persists one draft per normalized project key
type Store interface {
	Save(ctx context.Context, d Draft) error
	Load(ctx context.Context, key string) (Draft, bool, error)
}

// ServicePort is the draft surface used by handlers and the daily log workflow
type ServicePort interface {
	Get(ctx context.Context, projectID string) (Draft, error)
	Put(ctx context.Context, projectID string, fields map[string]string) (Draft, error)
}

// PutInput is the body of PUT /drafts/{project}
type PutInput struct {
	Fields map[string]string `json:"fields" validate:"required,max=8,dive,keys,oneof=work_performed crew_notes safety_notes extra,endkeys,max=20000"`
}
