package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
	"github.com/rmfarias/gatekeeper/backend/internal/repo"
)

func tripFixture() domain.FleetTrip {
	return domain.FleetTrip{
		DriverName:  "João Mendes",
		Vehicle:     "Fiat Strada - QWE-5678",
		DepartureKm: 12400.5,
	}
}

func TestFleetTripRepo_Create(t *testing.T) {
	r := repo.NewFleetTripRepo(newTestTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, input.DriverName, got.DriverName)
	assert.Equal(t, input.Vehicle, got.Vehicle)
	assert.Equal(t, input.DepartureKm, got.DepartureKm)
	assert.False(t, got.DepartedAt.IsZero(), "departed_at should be set by DB")
	assert.Nil(t, got.ArrivalKm)
	assert.Nil(t, got.ReturnedAt)
	assert.Equal(t, domain.TripStatusOut, got.Status())
}

func TestFleetTripRepo_Return(t *testing.T) {
	r := repo.NewFleetTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.Return(ctx, created.ID, 12451.0)

	require.NoError(t, err)
	require.NotNil(t, got.ArrivalKm)
	assert.Equal(t, 12451.0, *got.ArrivalKm)
	require.NotNil(t, got.ReturnedAt)
	assert.False(t, got.ReturnedAt.Before(got.DepartedAt), "returned_at must be >= departed_at")
	assert.Equal(t, domain.TripStatusReturned, got.Status())

	d := got.Distance()
	require.NotNil(t, d)
	assert.Equal(t, 50.5, *d)
}

func TestFleetTripRepo_Return_Twice_Conflict(t *testing.T) {
	r := repo.NewFleetTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)
	_, err = r.Return(ctx, created.ID, 12451.0)
	require.NoError(t, err)

	_, err = r.Return(ctx, created.ID, 99999.0)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The original arrival reading must survive the failed second return.
	got, err := r.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ArrivalKm)
	assert.Equal(t, 12451.0, *got.ArrivalKm)
}

func TestFleetTripRepo_Return_NotFound(t *testing.T) {
	r := repo.NewFleetTripRepo(newTestTx(t))

	_, err := r.Return(context.Background(), uuid.New(), 100)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFleetTripRepo_ListByDate(t *testing.T) {
	r := repo.NewFleetTripRepo(newTestTx(t))
	ctx := context.Background()

	first, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)
	second, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.ListByDate(ctx, domain.Today())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID, "ordered by departed_at ascending")
	assert.Equal(t, second.ID, got[1].ID)

	empty, err := r.ListByDate(ctx, domain.Today().AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFleetTripRepo_ListActiveAndCounts(t *testing.T) {
	r := repo.NewFleetTripRepo(newTestTx(t))
	ctx := context.Background()

	open, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)
	closed, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)
	_, err = r.Return(ctx, closed.ID, 12500)
	require.NoError(t, err)

	active, err := r.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, open.ID, active[0].ID)

	nActive, err := r.CountActive(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, nActive)

	nToday, err := r.CountByDate(ctx, domain.Today())
	require.NoError(t, err)
	assert.EqualValues(t, 2, nToday)
}
