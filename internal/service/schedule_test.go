package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
	"github.com/rmfarias/gatekeeper/backend/internal/service"
)

// mockScheduleRepo is a hand-written test double for repo.ScheduleRepo.
type mockScheduleRepo struct {
	create             func(ctx context.Context, s domain.Schedule) (domain.Schedule, error)
	complete           func(ctx context.Context, id uuid.UUID) (domain.Schedule, error)
	deleteFn           func(ctx context.Context, id uuid.UUID) error
	list               func(ctx context.Context) ([]domain.Schedule, error)
	listByDate         func(ctx context.Context, date time.Time) ([]domain.Schedule, error)
	listPendingByDate  func(ctx context.Context, date time.Time) ([]domain.Schedule, error)
	countPendingByDate func(ctx context.Context, date time.Time) (int64, error)
}

func (m *mockScheduleRepo) Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	return m.create(ctx, s)
}
func (m *mockScheduleRepo) Complete(ctx context.Context, id uuid.UUID) (domain.Schedule, error) {
	return m.complete(ctx, id)
}
func (m *mockScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}
func (m *mockScheduleRepo) List(ctx context.Context) ([]domain.Schedule, error) {
	return m.list(ctx)
}
func (m *mockScheduleRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Schedule, error) {
	return m.listByDate(ctx, date)
}
func (m *mockScheduleRepo) ListPendingByDate(ctx context.Context, date time.Time) ([]domain.Schedule, error) {
	return m.listPendingByDate(ctx, date)
}
func (m *mockScheduleRepo) CountPendingByDate(ctx context.Context, date time.Time) (int64, error) {
	return m.countPendingByDate(ctx, date)
}

var _ repo.ScheduleRepo = (*mockScheduleRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validSchedule() domain.Schedule {
	return domain.Schedule{
		VisitorName: "Fernanda Alves",
		VisitDate:   domain.Today(),
		VisitTime:   "14:30",
	}
}

func echoScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{
		create: func(_ context.Context, s domain.Schedule) (domain.Schedule, error) { return s, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestScheduleService_Create_Valid(t *testing.T) {
	svc := service.NewScheduleService(echoScheduleRepo())

	got, err := svc.Create(context.Background(), validSchedule())

	require.NoError(t, err)
	assert.Equal(t, "Fernanda Alves", got.VisitorName)
}

func TestScheduleService_Create_MissingFields(t *testing.T) {
	svc := service.NewScheduleService(echoScheduleRepo())

	t.Run("visitor_name", func(t *testing.T) {
		s := validSchedule()
		s.VisitorName = "  "
		_, err := svc.Create(context.Background(), s)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("visit_date", func(t *testing.T) {
		s := validSchedule()
		s.VisitDate = time.Time{}
		_, err := svc.Create(context.Background(), s)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("visit_time", func(t *testing.T) {
		s := validSchedule()
		s.VisitTime = ""
		_, err := svc.Create(context.Background(), s)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

// ---- Complete / Remove -----------------------------------------------------

func TestScheduleService_Complete(t *testing.T) {
	id := uuid.New()
	svc := service.NewScheduleService(&mockScheduleRepo{
		complete: func(_ context.Context, got uuid.UUID) (domain.Schedule, error) {
			assert.Equal(t, id, got)
			s := validSchedule()
			s.ID = got
			s.Status = domain.ScheduleStatusCompleted
			return s, nil
		},
	})

	got, err := svc.Complete(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleStatusCompleted, got.Status)
}

func TestScheduleService_Remove_PropagatesNotFound(t *testing.T) {
	svc := service.NewScheduleService(&mockScheduleRepo{
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	})

	err := svc.Remove(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- listings --------------------------------------------------------------

func TestScheduleService_ListToday_QueriesPendingForToday(t *testing.T) {
	svc := service.NewScheduleService(&mockScheduleRepo{
		listPendingByDate: func(_ context.Context, date time.Time) ([]domain.Schedule, error) {
			assert.True(t, date.Equal(domain.Today()))
			return nil, nil
		},
	})

	got, err := svc.ListToday(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScheduleService_ListAll_NilBecomesEmpty(t *testing.T) {
	svc := service.NewScheduleService(&mockScheduleRepo{
		list: func(_ context.Context) ([]domain.Schedule, error) { return nil, nil },
	})

	got, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
