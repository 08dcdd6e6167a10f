package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

// ScheduleService implements the appointment lifecycle: creation, one-way
// completion, deletion, and the listings that drive the agenda page and the
// notification badge.
type ScheduleService struct {
	schedules repo.ScheduleRepo
}

// NewScheduleService constructs a ScheduleService backed by the provided repo.
func NewScheduleService(schedules repo.ScheduleRepo) *ScheduleService {
	return &ScheduleService{schedules: schedules}
}

// Create validates and persists a new pending schedule.
// Visitor name, visit date, and visit time are required.
func (s *ScheduleService) Create(ctx context.Context, sch domain.Schedule) (domain.Schedule, error) {
	if strings.TrimSpace(sch.VisitorName) == "" {
		return domain.Schedule{}, fmt.Errorf("%w: visitor_name is required", domain.ErrValidation)
	}
	if sch.VisitDate.IsZero() {
		return domain.Schedule{}, fmt.Errorf("%w: visit_date is required", domain.ErrValidation)
	}
	if strings.TrimSpace(sch.VisitTime) == "" {
		return domain.Schedule{}, fmt.Errorf("%w: visit_time is required", domain.ErrValidation)
	}

	result, err := s.schedules.Create(ctx, sch)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Create: %w", err)
	}
	return result, nil
}

// Complete transitions a schedule to completed. Unlike visitor checkout,
// completion is idempotent: re-completing an already-completed schedule is a
// no-op success. The transition is one-way — there is no way back to pending.
func (s *ScheduleService) Complete(ctx context.Context, id uuid.UUID) (domain.Schedule, error) {
	result, err := s.schedules.Complete(ctx, id)
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("service.ScheduleService.Complete: %w", err)
	}
	return result, nil
}

// Remove deletes a schedule regardless of status.
func (s *ScheduleService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.schedules.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ScheduleService.Remove: %w", err)
	}
	return nil
}

// ListToday returns today's still-pending schedules, ordered by visit time.
// Completed items are excluded so a completed same-day appointment stops
// counting toward the notification badge.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ScheduleService) ListToday(ctx context.Context) ([]domain.Schedule, error) {
	schedules, err := s.schedules.ListPendingByDate(ctx, domain.Today())
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.ListToday: %w", err)
	}
	if schedules == nil {
		return []domain.Schedule{}, nil
	}
	return schedules, nil
}

// ListAll returns every schedule ordered by visit date, then visit time.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ScheduleService) ListAll(ctx context.Context) ([]domain.Schedule, error) {
	schedules, err := s.schedules.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ScheduleService.ListAll: %w", err)
	}
	if schedules == nil {
		return []domain.Schedule{}, nil
	}
	return schedules, nil
}
