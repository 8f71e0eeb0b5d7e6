// Package service contains the scope upload and lookup workflows
package service

import (
	"context"

	"scopetrack/internal/core/checklist"
	"scopetrack/internal/core/extract"
	"scopetrack/internal/core/segment"
	"scopetrack/internal/platform/logger"
	"scopetrack/internal/services/scopes/domain"
)

// Service defines the scopes service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the scopes service
type Svc struct {
	store domain.Store
	ext   *extract.Extractor
	seg   *segment.Segmenter
}

// New constructs a scopes service
func New(st domain.Store, ext *extract.Extractor, seg *segment.Segmenter) *Svc {
	if st == nil {
		panic("scopes.Service requires a non nil Store")
	}
	if ext == nil || seg == nil {
		panic("scopes.Service requires an extractor and a segmenter")
	}
	return &Svc{store: st, ext: ext, seg: seg}
}

// Upload extracts text from a scope document, segments it and replaces the project's checklist
func (s *Svc) Upload(ctx context.Context, projectID string, data []byte, hint string) (domain.Scope, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return domain.Scope{}, err
	}
	text, err := s.ext.Extract(ctx, data, hint)
	if err != nil {
		return domain.Scope{}, err
	}
	c := s.seg.Segment(text)
	if err := s.store.Save(ctx, key, c); err != nil {
		return domain.Scope{}, err
	}
	logger.For(ctx, "scopes").Info().
		Str("project", key).
		Int("bytes", len(data)).
		Int("items", c.Len()).
		Msg("scope uploaded")
	return domain.ScopeOf(key, c), nil
}

// Replace stores items as the project's checklist after marker stripping and de-duplication
func (s *Svc) Replace(ctx context.Context, projectID string, items []string) (domain.Scope, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return domain.Scope{}, err
	}
	c := s.seg.Clean(items)
	if err := s.store.Save(ctx, key, c); err != nil {
		return domain.Scope{}, err
	}
	logger.For(ctx, "scopes").Info().Str("project", key).Int("items", c.Len()).Msg("scope replaced")
	return domain.ScopeOf(key, c), nil
}

// Get returns the project's checklist; unknown projects are empty
func (s *Svc) Get(ctx context.Context, projectID string) (domain.Scope, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return domain.Scope{}, err
	}
	c, err := s.store.Load(ctx, key)
	if err != nil {
		return domain.Scope{}, err
	}
	return domain.ScopeOf(key, c), nil
}

// Checklist loads the project's checklist for reconciliation
func (s *Svc) Checklist(ctx context.Context, projectID string) (checklist.Checklist, error) {
	key, err := checklist.ProjectKey(projectID)
	if err != nil {
		return checklist.Checklist{}, err
	}
	return s.store.Load(ctx, key)
}
