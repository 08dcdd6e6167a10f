package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
	"github.com/rmfarias/gatekeeper/backend/internal/service"
)

// mockObservationRepo is a hand-written test double for repo.ObservationRepo.
// Visitor, fleet, and schedule mocks come from the sibling test files.
type mockObservationRepo struct {
	getByDate func(ctx context.Context, date time.Time) (domain.DailyObservation, error)
	upsert    func(ctx context.Context, obs domain.DailyObservation) (domain.DailyObservation, error)
}

func (m *mockObservationRepo) GetByDate(ctx context.Context, date time.Time) (domain.DailyObservation, error) {
	return m.getByDate(ctx, date)
}
func (m *mockObservationRepo) Upsert(ctx context.Context, obs domain.DailyObservation) (domain.DailyObservation, error) {
	return m.upsert(ctx, obs)
}

var _ repo.ObservationRepo = (*mockObservationRepo)(nil)

// ---- helpers ---------------------------------------------------------------

// emptyDayRepos returns the four repos all reporting an empty date.
func emptyDayRepos() (*mockVisitorRepo, *mockFleetTripRepo, *mockScheduleRepo, *mockObservationRepo) {
	return &mockVisitorRepo{
			listByDate: func(_ context.Context, _ time.Time) ([]domain.Visitor, error) { return nil, nil },
		},
		&mockFleetTripRepo{
			listByDate: func(_ context.Context, _ time.Time) ([]domain.FleetTrip, error) { return nil, nil },
		},
		&mockScheduleRepo{
			listByDate: func(_ context.Context, _ time.Time) ([]domain.Schedule, error) { return nil, nil },
		},
		&mockObservationRepo{
			getByDate: func(_ context.Context, _ time.Time) (domain.DailyObservation, error) {
				return domain.DailyObservation{}, domain.ErrNotFound
			},
		}
}

// ---- BuildReport -----------------------------------------------------------

func TestReportService_BuildReport_EmptyDay(t *testing.T) {
	svc := service.NewReportService(emptyDayRepos())

	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	got, err := svc.BuildReport(context.Background(), date)

	require.NoError(t, err, "a day without activity is a valid report, not an error")
	assert.Equal(t, "2026-08-15", got.Date)
	assert.NotNil(t, got.Visitors)
	assert.Empty(t, got.Visitors)
	assert.NotNil(t, got.Fleet)
	assert.Empty(t, got.Fleet)
	assert.NotNil(t, got.Schedules)
	assert.Empty(t, got.Schedules)
	assert.Empty(t, got.Observation)
	assert.Empty(t, got.PorterName)
}

func TestReportService_BuildReport_ComposesSections(t *testing.T) {
	visitors := []domain.Visitor{{Name: "Ana Souza"}}
	trips := []domain.FleetTrip{{DriverName: "João Mendes"}}
	schedules := []domain.Schedule{{VisitorName: "Fernanda Alves"}}

	svc := service.NewReportService(
		&mockVisitorRepo{
			listByDate: func(_ context.Context, _ time.Time) ([]domain.Visitor, error) { return visitors, nil },
		},
		&mockFleetTripRepo{
			listByDate: func(_ context.Context, _ time.Time) ([]domain.FleetTrip, error) { return trips, nil },
		},
		&mockScheduleRepo{
			listByDate: func(_ context.Context, _ time.Time) ([]domain.Schedule, error) { return schedules, nil },
		},
		&mockObservationRepo{
			getByDate: func(_ context.Context, _ time.Time) (domain.DailyObservation, error) {
				return domain.DailyObservation{Observation: "quiet shift", PorterName: "Marcos"}, nil
			},
		},
	)

	got, err := svc.BuildReport(context.Background(), domain.Today())

	require.NoError(t, err)
	assert.Equal(t, visitors, got.Visitors)
	assert.Equal(t, trips, got.Fleet)
	assert.Equal(t, schedules, got.Schedules)
	assert.Equal(t, "quiet shift", got.Observation)
	assert.Equal(t, "Marcos", got.PorterName)
}

// A failing sub-read fails the whole report. A report silently missing a
// section would look complete while lying.
func TestReportService_BuildReport_SubReadFailure(t *testing.T) {
	boom := errors.New("connection reset")
	v, f, s, o := emptyDayRepos()
	f.listByDate = func(_ context.Context, _ time.Time) ([]domain.FleetTrip, error) { return nil, boom }

	svc := service.NewReportService(v, f, s, o)

	_, err := svc.BuildReport(context.Background(), domain.Today())

	assert.ErrorIs(t, err, boom)
}

func TestReportService_BuildReport_ObservationReadFailure(t *testing.T) {
	boom := errors.New("connection reset")
	v, f, s, o := emptyDayRepos()
	o.getByDate = func(_ context.Context, _ time.Time) (domain.DailyObservation, error) {
		return domain.DailyObservation{}, boom
	}

	svc := service.NewReportService(v, f, s, o)

	_, err := svc.BuildReport(context.Background(), domain.Today())

	assert.ErrorIs(t, err, boom, "only ErrNotFound means 'no observation yet'")
}

// ---- SaveObservation -------------------------------------------------------

func TestReportService_SaveObservation_TruncatesToDate(t *testing.T) {
	svc := service.NewReportService(nil, nil, nil, &mockObservationRepo{
		upsert: func(_ context.Context, obs domain.DailyObservation) (domain.DailyObservation, error) {
			assert.Equal(t, 0, obs.Date.Hour())
			assert.Equal(t, 0, obs.Date.Minute())
			return obs, nil
		},
	})

	at := time.Date(2026, 8, 15, 17, 42, 0, 0, time.UTC)
	got, err := svc.SaveObservation(context.Background(), at, "gate painted", "Paula")

	require.NoError(t, err)
	assert.Equal(t, "gate painted", got.Observation)
	assert.Equal(t, "Paula", got.PorterName)
}
