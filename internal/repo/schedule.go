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

// scheduleColumns is the SELECT list shared by every schedule query, in the
// order scanSchedule expects.
const scheduleColumns = `id, visitor_name, company, visit_date, visit_time, notes, status, created_at`

// ScheduleRepo defines the persistence operations for Schedules.
type ScheduleRepo interface {
	// Create inserts a new schedule in pending status and returns the
	// persisted record.
	Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error)

	// Complete marks a schedule completed. Completing an already-completed
	// schedule succeeds and leaves the row unchanged.
	// Returns domain.ErrNotFound if the ID is unknown.
	Complete(ctx context.Context, id uuid.UUID) (domain.Schedule, error)

	// Delete removes a schedule regardless of status.
	// Returns domain.ErrNotFound if the ID is unknown.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all schedules ordered by visit_date, then visit_time.
	List(ctx context.Context) ([]domain.Schedule, error)

	// ListByDate returns all schedules for the given date regardless of
	// status, ordered by visit_time.
	ListByDate(ctx context.Context, date time.Time) ([]domain.Schedule, error)

	// ListPendingByDate returns only pending schedules for the given date,
	// ordered by visit_time. This is the notification-badge query: completed
	// items must never appear in it.
	ListPendingByDate(ctx context.Context, date time.Time) ([]domain.Schedule, error)

	// CountPendingByDate returns the number of pending schedules for the
	// given date.
	CountPendingByDate(ctx context.Context, date time.Time) (int64, error)
}

// pgScheduleRepo is the Postgres implementation of ScheduleRepo.
type pgScheduleRepo struct {
	db db
}

// NewScheduleRepo constructs a ScheduleRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewScheduleRepo(db db) ScheduleRepo {
	return &pgScheduleRepo{db: db}
}

func (r *pgScheduleRepo) Create(ctx context.Context, s domain.Schedule) (domain.Schedule, error) {
	const q = `
		INSERT INTO schedules (visitor_name, company, visit_date, visit_time, notes)
		VALUES (@visitor_name, @company, @visit_date, @visit_time, @notes)
		RETURNING ` + scheduleColumns

	args := pgx.NamedArgs{
		"visitor_name": s.VisitorName,
		"company":      s.Company,
		"visit_date":   s.VisitDate,
		"visit_time":   s.VisitTime,
		"notes":        s.Notes,
	}

	result, err := scanSchedule(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.Create: %w", err)
	}
	return result, nil
}

// Complete is idempotent: the UPDATE matches on id alone, so re-completing
// an already-completed schedule rewrites the same status and succeeds.
func (r *pgScheduleRepo) Complete(ctx context.Context, id uuid.UUID) (domain.Schedule, error) {
	const q = `
		UPDATE schedules
		SET status = 'completed'
		WHERE id = @id
		RETURNING ` + scheduleColumns

	result, err := scanSchedule(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Schedule{}, fmt.Errorf("repo.ScheduleRepo.Complete: %w", err)
	}
	return result, nil
}

func (r *pgScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM schedules WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ScheduleRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgScheduleRepo) List(ctx context.Context) ([]domain.Schedule, error) {
	const q = `
		SELECT ` + scheduleColumns + `
		FROM schedules
		ORDER BY visit_date ASC, visit_time ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.List: %w", err)
	}
	return collectSchedules(rows, "List")
}

func (r *pgScheduleRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Schedule, error) {
	const q = `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE visit_date = @visit_date
		ORDER BY visit_time ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"visit_date": domain.DateOf(date)})
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.ListByDate: %w", err)
	}
	return collectSchedules(rows, "ListByDate")
}

func (r *pgScheduleRepo) ListPendingByDate(ctx context.Context, date time.Time) ([]domain.Schedule, error) {
	const q = `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE visit_date = @visit_date AND status = 'pending'
		ORDER BY visit_time ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"visit_date": domain.DateOf(date)})
	if err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.ListPendingByDate: %w", err)
	}
	return collectSchedules(rows, "ListPendingByDate")
}

func (r *pgScheduleRepo) CountPendingByDate(ctx context.Context, date time.Time) (int64, error) {
	const q = `SELECT count(*) FROM schedules WHERE visit_date = @visit_date AND status = 'pending'`

	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"visit_date": domain.DateOf(date)}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.ScheduleRepo.CountPendingByDate: %w", err)
	}
	return n, nil
}

// collectSchedules drains rows into a slice, closing them when done.
func collectSchedules(rows pgx.Rows, op string) ([]domain.Schedule, error) {
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ScheduleRepo.%s: scan: %w", op, err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ScheduleRepo.%s: rows: %w", op, err)
	}
	return schedules, nil
}

// scanSchedule maps a single database row into a domain.Schedule.
func scanSchedule(s scanner) (domain.Schedule, error) {
	var (
		sch       domain.Schedule
		id        pgtype.UUID
		visitDate pgtype.Date
	)

	err := s.Scan(&id, &sch.VisitorName, &sch.Company, &visitDate,
		&sch.VisitTime, &sch.Notes, &sch.Status, &sch.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Schedule{}, domain.ErrNotFound
		}
		return domain.Schedule{}, err
	}

	sch.ID = uuid.UUID(id.Bytes)
	sch.VisitDate = visitDate.Time

	return sch, nil
}
