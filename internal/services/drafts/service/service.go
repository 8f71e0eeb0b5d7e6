// Package service implements the autofill draft workflow
package service

import (
	"context"
	"time"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/services/drafts/domain"
)

// Svc implements domain.ServicePort
type Svc struct {
	store domain.Store
	now   func() time.Time
}

// New constructs a draft service
func New(st domain.Store) *Svc {
	if st == nil {
		panic("drafts.Service requires a non nil Store")
	}
	return &Svc{store: st, now: func() time.Time { return time.Now().UTC() }}
}

// Get returns the project's draft; projects without one get an empty draft
func (s *Svc) Get(ctx context.Context, projectID string) (domain.Draft, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return domain.Draft{}, err
	}
	d, ok, err := s.store.Load(ctx, key)
	if err != nil {
		return domain.Draft{}, err
	}
	if !ok {
		return domain.Draft{ProjectID: key, Fields: map[string]string{}}, nil
	}
	if d.Fields == nil {
		d.Fields = map[string]string{}
	}
	return d, nil
}

// Put replaces the project's draft
func (s *Svc) Put(ctx context.Context, projectID string, fields map[string]string) (domain.Draft, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return domain.Draft{}, err
	}
	if fields == nil {
		fields = map[string]string{}
	}
	d := domain.Draft{ProjectID: key, Fields: fields, UpdatedAt: s.now()}
	if err := s.store.Save(ctx, d); err != nil {
		return domain.Draft{}, err
	}
	return d, nil
}
