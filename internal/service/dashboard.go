package service

import (
	"context"
	"fmt"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

// DashboardService computes the current-moment gate counters.
// Nothing is cached: every call reflects the store state at call time, and
// the front end simply polls on a timer.
type DashboardService struct {
	visitors  repo.VisitorRepo
	trips     repo.FleetTripRepo
	schedules repo.ScheduleRepo
}

// NewDashboardService constructs a DashboardService backed by the provided repos.
func NewDashboardService(visitors repo.VisitorRepo, trips repo.FleetTripRepo, schedules repo.ScheduleRepo) *DashboardService {
	return &DashboardService{visitors: visitors, trips: trips, schedules: schedules}
}

// Stats returns the dashboard counters: visitors currently inside, today's
// entries, today's pending schedules, vehicles currently out, and today's
// departures.
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	today := domain.Today()
	var stats domain.DashboardStats
	var err error

	if stats.ActiveVisitors, err = s.visitors.CountActive(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: active visitors: %w", err)
	}
	if stats.TodayVisitors, err = s.visitors.CountByDate(ctx, today); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: today visitors: %w", err)
	}
	if stats.TodaySchedules, err = s.schedules.CountPendingByDate(ctx, today); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: today schedules: %w", err)
	}
	if stats.ActiveTrips, err = s.trips.CountActive(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: active trips: %w", err)
	}
	if stats.TodayTrips, err = s.trips.CountByDate(ctx, today); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("service.DashboardService.Stats: today trips: %w", err)
	}

	return stats, nil
}
