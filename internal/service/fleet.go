package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

// FleetService implements the vehicle trip lifecycle: departure and return
// registration plus date/active listings.
type FleetService struct {
	trips repo.FleetTripRepo
}

// NewFleetService constructs a FleetService backed by the provided repo.
func NewFleetService(trips repo.FleetTripRepo) *FleetService {
	return &FleetService{trips: trips}
}

// RegisterDeparture validates and persists a new trip in em_viagem status.
// Driver and vehicle are required; the departure odometer reading must be a
// finite non-negative number.
func (s *FleetService) RegisterDeparture(ctx context.Context, t domain.FleetTrip) (domain.FleetTrip, error) {
	if strings.TrimSpace(t.DriverName) == "" {
		return domain.FleetTrip{}, fmt.Errorf("%w: driver_name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(t.Vehicle) == "" {
		return domain.FleetTrip{}, fmt.Errorf("%w: vehicle is required", domain.ErrValidation)
	}
	if !isFinite(t.DepartureKm) || t.DepartureKm < 0 {
		return domain.FleetTrip{}, fmt.Errorf("%w: departure_km must be a non-negative number", domain.ErrValidation)
	}

	result, err := s.trips.Create(ctx, t)
	if err != nil {
		return domain.FleetTrip{}, fmt.Errorf("service.FleetService.RegisterDeparture: %w", err)
	}
	return result, nil
}

// RegisterReturn closes an open trip with the arrival odometer reading.
// The repo performs the state check and the write as one conditional UPDATE,
// so a second return of the same trip fails with ErrConflict.
//
// An arrival reading below the departure reading is accepted and yields a
// negative derived distance; whether to clamp or reject is an open product
// decision and the gate currently records what the porter typed.
func (s *FleetService) RegisterReturn(ctx context.Context, id uuid.UUID, arrivalKm float64) (domain.FleetTrip, error) {
	if !isFinite(arrivalKm) {
		return domain.FleetTrip{}, fmt.Errorf("%w: arrival_km must be a number", domain.ErrValidation)
	}

	result, err := s.trips.Return(ctx, id, arrivalKm)
	if err != nil {
		return domain.FleetTrip{}, fmt.Errorf("service.FleetService.RegisterReturn: %w", err)
	}
	return result, nil
}

// ListByDate returns all trips that departed on the given calendar date,
// ordered by departure time ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FleetService) ListByDate(ctx context.Context, date time.Time) ([]domain.FleetTrip, error) {
	trips, err := s.trips.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("service.FleetService.ListByDate: %w", err)
	}
	if trips == nil {
		return []domain.FleetTrip{}, nil
	}
	return trips, nil
}

// ListActive returns all trips currently out, ordered by departure time ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FleetService) ListActive(ctx context.Context) ([]domain.FleetTrip, error) {
	trips, err := s.trips.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.FleetService.ListActive: %w", err)
	}
	if trips == nil {
		return []domain.FleetTrip{}, nil
	}
	return trips, nil
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
