package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// tripColumns is the SELECT list shared by every fleet trip query, in the
// order scanTrip expects.
const tripColumns = `id, driver_name, vehicle, departure_km, arrival_km, departed_at, returned_at, created_at`

// FleetTripRepo defines the persistence operations for FleetTrips.
type FleetTripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, departed_at, and created_at populated).
	Create(ctx context.Context, t domain.FleetTrip) (domain.FleetTrip, error)

	// GetByID retrieves a single trip by its UUID primary key.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.FleetTrip, error)

	// Return closes an open trip by setting arrival_km and returned_at.
	// The state check and the write are one conditional UPDATE, so two
	// concurrent returns cannot both succeed.
	// Returns domain.ErrConflict if the trip already returned,
	// domain.ErrNotFound if the ID is unknown.
	Return(ctx context.Context, id uuid.UUID, arrivalKm float64) (domain.FleetTrip, error)

	// ListByDate returns all trips that departed on the given UTC calendar
	// date, ordered by departed_at ascending.
	ListByDate(ctx context.Context, date time.Time) ([]domain.FleetTrip, error)

	// ListActive returns all open trips, ordered by departed_at ascending.
	ListActive(ctx context.Context) ([]domain.FleetTrip, error)

	// CountActive returns the number of vehicles currently out.
	CountActive(ctx context.Context) (int64, error)

	// CountByDate returns the number of trips that departed on the given
	// UTC calendar date.
	CountByDate(ctx context.Context, date time.Time) (int64, error)
}

// pgFleetTripRepo is the Postgres implementation of FleetTripRepo.
type pgFleetTripRepo struct {
	db db
}

// NewFleetTripRepo constructs a FleetTripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewFleetTripRepo(db db) FleetTripRepo {
	return &pgFleetTripRepo{db: db}
}

func (r *pgFleetTripRepo) Create(ctx context.Context, t domain.FleetTrip) (domain.FleetTrip, error) {
	const q = `
		INSERT INTO fleet_trips (driver_name, vehicle, departure_km)
		VALUES (@driver_name, @vehicle, @departure_km)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"driver_name":  t.DriverName,
		"vehicle":      t.Vehicle,
		"departure_km": t.DepartureKm,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.FleetTrip{}, fmt.Errorf("repo.FleetTripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgFleetTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.FleetTrip, error) {
	const q = `SELECT ` + tripColumns + ` FROM fleet_trips WHERE id = @id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.FleetTrip{}, fmt.Errorf("repo.FleetTripRepo.GetByID: %w", err)
	}
	return result, nil
}

// Return closes an open trip. The `arrival_km IS NULL` guard makes a double
// return impossible: the second caller matches zero rows and the stored
// arrival reading is never overwritten.
func (r *pgFleetTripRepo) Return(ctx context.Context, id uuid.UUID, arrivalKm float64) (domain.FleetTrip, error) {
	const q = `
		UPDATE fleet_trips
		SET arrival_km = @arrival_km, returned_at = clock_timestamp()
		WHERE id = @id AND arrival_km IS NULL
		RETURNING ` + tripColumns

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "arrival_km": arrivalKm}))
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.FleetTrip{}, fmt.Errorf("repo.FleetTripRepo.Return: %w", err)
	}

	// Zero rows matched: either the trip does not exist or it already
	// returned. Look it up to report the right error.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return domain.FleetTrip{}, fmt.Errorf("repo.FleetTripRepo.Return: %w", domain.ErrNotFound)
	}
	return domain.FleetTrip{}, fmt.Errorf("repo.FleetTripRepo.Return: already returned: %w", domain.ErrConflict)
}

func (r *pgFleetTripRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.FleetTrip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM fleet_trips
		WHERE departed_at >= @start AND departed_at < @end
		ORDER BY departed_at ASC`

	start := domain.DateOf(date)
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"start": start, "end": start.AddDate(0, 0, 1)})
	if err != nil {
		return nil, fmt.Errorf("repo.FleetTripRepo.ListByDate: %w", err)
	}
	return collectTrips(rows, "ListByDate")
}

func (r *pgFleetTripRepo) ListActive(ctx context.Context) ([]domain.FleetTrip, error) {
	const q = `
		SELECT ` + tripColumns + `
		FROM fleet_trips
		WHERE arrival_km IS NULL
		ORDER BY departed_at ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.FleetTripRepo.ListActive: %w", err)
	}
	return collectTrips(rows, "ListActive")
}

func (r *pgFleetTripRepo) CountActive(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM fleet_trips WHERE arrival_km IS NULL`

	var n int64
	if err := r.db.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.FleetTripRepo.CountActive: %w", err)
	}
	return n, nil
}

func (r *pgFleetTripRepo) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	const q = `SELECT count(*) FROM fleet_trips WHERE departed_at >= @start AND departed_at < @end`

	start := domain.DateOf(date)
	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"start": start, "end": start.AddDate(0, 0, 1)}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.FleetTripRepo.CountByDate: %w", err)
	}
	return n, nil
}

// collectTrips drains rows into a slice, closing them when done.
func collectTrips(rows pgx.Rows, op string) ([]domain.FleetTrip, error) {
	defer rows.Close()

	var trips []domain.FleetTrip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.FleetTripRepo.%s: scan: %w", op, err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.FleetTripRepo.%s: rows: %w", op, err)
	}
	return trips, nil
}

// scanTrip maps a single database row into a domain.FleetTrip.
// It handles the UUID and the nullable arrival_km / returned_at conversions.
func scanTrip(s scanner) (domain.FleetTrip, error) {
	var (
		t          domain.FleetTrip
		id         pgtype.UUID
		arrivalKm  pgtype.Float8
		returnedAt pgtype.Timestamptz
	)

	err := s.Scan(&id, &t.DriverName, &t.Vehicle, &t.DepartureKm, &arrivalKm,
		&t.DepartedAt, &returnedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.FleetTrip{}, domain.ErrNotFound
		}
		return domain.FleetTrip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if arrivalKm.Valid {
		km := arrivalKm.Float64
		t.ArrivalKm = &km
	}
	if returnedAt.Valid {
		at := returnedAt.Time
		t.ReturnedAt = &at
	}

	return t, nil
}
