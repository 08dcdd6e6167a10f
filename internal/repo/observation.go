package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// ObservationRepo defines the persistence operations for DailyObservations.
// Observations are keyed by calendar date: one row per date, upsert semantics.
type ObservationRepo interface {
	// GetByDate retrieves the observation for the given date.
	// Returns domain.ErrNotFound if nothing was saved for that date yet.
	GetByDate(ctx context.Context, date time.Time) (domain.DailyObservation, error)

	// Upsert creates the observation for its date or overwrites both text
	// fields if one already exists. Empty strings are stored as-is, so a
	// saved observation can be cleared.
	Upsert(ctx context.Context, obs domain.DailyObservation) (domain.DailyObservation, error)
}

// pgObservationRepo is the Postgres implementation of ObservationRepo.
type pgObservationRepo struct {
	db db
}

// NewObservationRepo constructs an ObservationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewObservationRepo(db db) ObservationRepo {
	return &pgObservationRepo{db: db}
}

func (r *pgObservationRepo) GetByDate(ctx context.Context, date time.Time) (domain.DailyObservation, error) {
	const q = `
		SELECT date, observation, porter_name, updated_at
		FROM report_observations
		WHERE date = @date`

	result, err := scanObservation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"date": domain.DateOf(date)}))
	if err != nil {
		return domain.DailyObservation{}, fmt.Errorf("repo.ObservationRepo.GetByDate: %w", err)
	}
	return result, nil
}

func (r *pgObservationRepo) Upsert(ctx context.Context, obs domain.DailyObservation) (domain.DailyObservation, error) {
	const q = `
		INSERT INTO report_observations (date, observation, porter_name)
		VALUES (@date, @observation, @porter_name)
		ON CONFLICT (date) DO UPDATE
		SET observation = EXCLUDED.observation,
		    porter_name = EXCLUDED.porter_name,
		    updated_at  = now()
		RETURNING date, observation, porter_name, updated_at`

	args := pgx.NamedArgs{
		"date":        domain.DateOf(obs.Date),
		"observation": obs.Observation,
		"porter_name": obs.PorterName,
	}

	result, err := scanObservation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DailyObservation{}, fmt.Errorf("repo.ObservationRepo.Upsert: %w", err)
	}
	return result, nil
}

// scanObservation maps a single database row into a domain.DailyObservation.
func scanObservation(s scanner) (domain.DailyObservation, error) {
	var (
		obs  domain.DailyObservation
		date pgtype.Date
	)

	err := s.Scan(&date, &obs.Observation, &obs.PorterName, &obs.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DailyObservation{}, domain.ErrNotFound
		}
		return domain.DailyObservation{}, err
	}

	obs.Date = date.Time
	return obs, nil
}
