package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

// ReportService assembles the daily report and manages the per-day porter
// observation. It only reads the lifecycle stores and never mutates them.
type ReportService struct {
	visitors     repo.VisitorRepo
	trips        repo.FleetTripRepo
	schedules    repo.ScheduleRepo
	observations repo.ObservationRepo
}

// NewReportService constructs a ReportService backed by the provided repos.
func NewReportService(visitors repo.VisitorRepo, trips repo.FleetTripRepo, schedules repo.ScheduleRepo, observations repo.ObservationRepo) *ReportService {
	return &ReportService{
		visitors:     visitors,
		trips:        trips,
		schedules:    schedules,
		observations: observations,
	}
}

// BuildReport composes the full gate activity for one calendar date: the
// day's visitors, fleet trips, schedules, and the porter observation (empty
// strings when none was saved). A date with zero activity yields a report
// with empty sections, not an error.
//
// If any sub-read fails, the whole call fails: a report silently missing a
// section is worse than an explicit error.
func (s *ReportService) BuildReport(ctx context.Context, date time.Time) (domain.DailyReport, error) {
	report := domain.DailyReport{Date: domain.DateOf(date).Format(domain.DateLayout)}

	visitors, err := s.visitors.ListByDate(ctx, date)
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("service.ReportService.BuildReport: visitors: %w", err)
	}
	report.Visitors = visitors
	if report.Visitors == nil {
		report.Visitors = []domain.Visitor{}
	}

	trips, err := s.trips.ListByDate(ctx, date)
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("service.ReportService.BuildReport: fleet: %w", err)
	}
	report.Fleet = trips
	if report.Fleet == nil {
		report.Fleet = []domain.FleetTrip{}
	}

	schedules, err := s.schedules.ListByDate(ctx, date)
	if err != nil {
		return domain.DailyReport{}, fmt.Errorf("service.ReportService.BuildReport: schedules: %w", err)
	}
	report.Schedules = schedules
	if report.Schedules == nil {
		report.Schedules = []domain.Schedule{}
	}

	obs, err := s.observations.GetByDate(ctx, date)
	switch {
	case err == nil:
		report.Observation = obs.Observation
		report.PorterName = obs.PorterName
	case errors.Is(err, domain.ErrNotFound):
		// Nothing saved for this date yet — the report carries empty strings.
	default:
		return domain.DailyReport{}, fmt.Errorf("service.ReportService.BuildReport: observation: %w", err)
	}

	return report, nil
}

// SaveObservation upserts the porter observation for a date: created when
// absent, both fields overwritten when present. Empty strings are accepted —
// saving blanks is how an observation is cleared.
func (s *ReportService) SaveObservation(ctx context.Context, date time.Time, observation, porterName string) (domain.DailyObservation, error) {
	obs := domain.DailyObservation{
		Date:        domain.DateOf(date),
		Observation: observation,
		PorterName:  porterName,
	}

	result, err := s.observations.Upsert(ctx, obs)
	if err != nil {
		return domain.DailyObservation{}, fmt.Errorf("service.ReportService.SaveObservation: %w", err)
	}
	return result, nil
}
