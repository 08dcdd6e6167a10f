// Package service contains the business logic for the gatekeeper backend.
// Services validate inputs, enforce lifecycle rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

// VisitorService implements the visitor lifecycle: entry registration,
// checkout, date/active listings, and free-text search.
type VisitorService struct {
	visitors repo.VisitorRepo
}

// NewVisitorService constructs a VisitorService backed by the provided repo.
func NewVisitorService(visitors repo.VisitorRepo) *VisitorService {
	return &VisitorService{visitors: visitors}
}

// RegisterEntry validates and persists a new visitor.
// Name and document are required; everything else is optional free text.
func (s *VisitorService) RegisterEntry(ctx context.Context, v domain.Visitor) (domain.Visitor, error) {
	if strings.TrimSpace(v.Name) == "" {
		return domain.Visitor{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(v.Document) == "" {
		return domain.Visitor{}, fmt.Errorf("%w: document is required", domain.ErrValidation)
	}

	result, err := s.visitors.Create(ctx, v)
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.RegisterEntry: %w", err)
	}
	return result, nil
}

// RegisterExit closes an open visit. The repo performs the state check and
// the write as one conditional UPDATE, so a second checkout of the same
// visitor observes the already-closed state and fails with ErrConflict
// without touching the stored exit_time.
func (s *VisitorService) RegisterExit(ctx context.Context, id uuid.UUID) (domain.Visitor, error) {
	result, err := s.visitors.Checkout(ctx, id)
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("service.VisitorService.RegisterExit: %w", err)
	}
	return result, nil
}

// ListByDate returns all visitors who entered on the given calendar date,
// ordered by entry time ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VisitorService) ListByDate(ctx context.Context, date time.Time) ([]domain.Visitor, error) {
	visitors, err := s.visitors.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("service.VisitorService.ListByDate: %w", err)
	}
	if visitors == nil {
		return []domain.Visitor{}, nil
	}
	return visitors, nil
}

// ListActive returns all visitors currently inside, across all dates,
// ordered by entry time ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *VisitorService) ListActive(ctx context.Context) ([]domain.Visitor, error) {
	visitors, err := s.visitors.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.VisitorService.ListActive: %w", err)
	}
	if visitors == nil {
		return []domain.Visitor{}, nil
	}
	return visitors, nil
}

// Search performs a case-insensitive substring lookup over name, document,
// invoice, company, and vehicle plate, most recent entry first.
// An empty (or whitespace-only) query returns an empty result without
// touching the store: "no query yet" is not "query matched nothing".
func (s *VisitorService) Search(ctx context.Context, query string) ([]domain.Visitor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Visitor{}, nil
	}

	visitors, err := s.visitors.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service.VisitorService.Search: %w", err)
	}
	if visitors == nil {
		return []domain.Visitor{}, nil
	}
	return visitors, nil
}
