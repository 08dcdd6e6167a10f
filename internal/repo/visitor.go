package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// visitorColumns is the SELECT list shared by every visitor query, in the
// order scanVisitor expects.
const visitorColumns = `id, name, document, entry_time, exit_time, vehicle_plate, company, observation, invoice, created_at`

// VisitorRepo defines the persistence operations for Visitors.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type VisitorRepo interface {
	// Create inserts a new visitor and returns the persisted record (with
	// DB-generated id, entry_time, and created_at populated).
	Create(ctx context.Context, v domain.Visitor) (domain.Visitor, error)

	// GetByID retrieves a single visitor by its UUID primary key.
	// Returns domain.ErrNotFound if no visitor with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Visitor, error)

	// Checkout stamps exit_time on an open visitor and returns the
	// closed record. The state check and the write are one conditional
	// UPDATE, so two concurrent checkouts cannot both succeed.
	// Returns domain.ErrConflict if the visitor already checked out,
	// domain.ErrNotFound if the ID is unknown.
	Checkout(ctx context.Context, id uuid.UUID) (domain.Visitor, error)

	// ListByDate returns all visitors whose entry_time falls on the given
	// UTC calendar date, ordered by entry_time ascending.
	ListByDate(ctx context.Context, date time.Time) ([]domain.Visitor, error)

	// ListActive returns all visitors without an exit_time, across all
	// dates, ordered by entry_time ascending.
	ListActive(ctx context.Context) ([]domain.Visitor, error)

	// Search returns visitors whose name, document, invoice, company, or
	// vehicle plate contains q (case-insensitive), ordered by entry_time
	// descending. The caller is responsible for rejecting empty queries.
	Search(ctx context.Context, q string) ([]domain.Visitor, error)

	// CountActive returns the number of visitors currently inside.
	CountActive(ctx context.Context) (int64, error)

	// CountByDate returns the number of visitors who entered on the given
	// UTC calendar date.
	CountByDate(ctx context.Context, date time.Time) (int64, error)
}

// pgVisitorRepo is the Postgres implementation of VisitorRepo.
type pgVisitorRepo struct {
	db db
}

// NewVisitorRepo constructs a VisitorRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVisitorRepo(db db) VisitorRepo {
	return &pgVisitorRepo{db: db}
}

func (r *pgVisitorRepo) Create(ctx context.Context, v domain.Visitor) (domain.Visitor, error) {
	const q = `
		INSERT INTO visitors (name, document, vehicle_plate, company, observation, invoice)
		VALUES (@name, @document, @vehicle_plate, @company, @observation, @invoice)
		RETURNING ` + visitorColumns

	args := pgx.NamedArgs{
		"name":          v.Name,
		"document":      v.Document,
		"vehicle_plate": v.VehiclePlate,
		"company":       v.Company,
		"observation":   v.Observation,
		"invoice":       v.Invoice,
	}

	result, err := scanVisitor(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVisitorRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Visitor, error) {
	const q = `SELECT ` + visitorColumns + ` FROM visitors WHERE id = @id`

	result, err := scanVisitor(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.GetByID: %w", err)
	}
	return result, nil
}

// Checkout closes an open visit. The `exit_time IS NULL` guard in the WHERE
// clause is what makes double checkout impossible: the second caller matches
// zero rows and the existing exit_time is never overwritten.
func (r *pgVisitorRepo) Checkout(ctx context.Context, id uuid.UUID) (domain.Visitor, error) {
	const q = `
		UPDATE visitors
		SET exit_time = clock_timestamp()
		WHERE id = @id AND exit_time IS NULL
		RETURNING ` + visitorColumns

	result, err := scanVisitor(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Checkout: %w", err)
	}

	// Zero rows matched: either the visitor does not exist or it is already
	// closed. Look it up to report the right error.
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Checkout: %w", domain.ErrNotFound)
	}
	return domain.Visitor{}, fmt.Errorf("repo.VisitorRepo.Checkout: already checked out: %w", domain.ErrConflict)
}

func (r *pgVisitorRepo) ListByDate(ctx context.Context, date time.Time) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE entry_time >= @start AND entry_time < @end
		ORDER BY entry_time ASC`

	start := domain.DateOf(date)
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"start": start, "end": start.AddDate(0, 0, 1)})
	if err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.ListByDate: %w", err)
	}
	return collectVisitors(rows, "ListByDate")
}

func (r *pgVisitorRepo) ListActive(ctx context.Context) ([]domain.Visitor, error) {
	const q = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE exit_time IS NULL
		ORDER BY entry_time ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.ListActive: %w", err)
	}
	return collectVisitors(rows, "ListActive")
}

// Search matches the substring case-insensitively against every lookup field.
// Recency ordering (entry_time DESC) is deliberate: this is the one query
// where the most recent record is the most likely answer.
func (r *pgVisitorRepo) Search(ctx context.Context, q string) ([]domain.Visitor, error) {
	const sql = `
		SELECT ` + visitorColumns + `
		FROM visitors
		WHERE name ILIKE @pattern
		   OR document ILIKE @pattern
		   OR invoice ILIKE @pattern
		   OR company ILIKE @pattern
		   OR vehicle_plate ILIKE @pattern
		ORDER BY entry_time DESC`

	rows, err := r.db.Query(ctx, sql, pgx.NamedArgs{"pattern": "%" + escapeLike(q) + "%"})
	if err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.Search: %w", err)
	}
	return collectVisitors(rows, "Search")
}

func (r *pgVisitorRepo) CountActive(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM visitors WHERE exit_time IS NULL`

	var n int64
	if err := r.db.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.VisitorRepo.CountActive: %w", err)
	}
	return n, nil
}

func (r *pgVisitorRepo) CountByDate(ctx context.Context, date time.Time) (int64, error) {
	const q = `SELECT count(*) FROM visitors WHERE entry_time >= @start AND entry_time < @end`

	start := domain.DateOf(date)
	var n int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"start": start, "end": start.AddDate(0, 0, 1)}).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.VisitorRepo.CountByDate: %w", err)
	}
	return n, nil
}

// collectVisitors drains rows into a slice, closing them when done.
func collectVisitors(rows pgx.Rows, op string) ([]domain.Visitor, error) {
	defer rows.Close()

	var visitors []domain.Visitor
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VisitorRepo.%s: scan: %w", op, err)
		}
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VisitorRepo.%s: rows: %w", op, err)
	}
	return visitors, nil
}

// scanVisitor maps a single database row into a domain.Visitor.
// It handles the UUID and nullable exit_time conversions.
func scanVisitor(s scanner) (domain.Visitor, error) {
	var (
		v        domain.Visitor
		id       pgtype.UUID
		exitTime pgtype.Timestamptz
	)

	err := s.Scan(&id, &v.Name, &v.Document, &v.EntryTime, &exitTime,
		&v.VehiclePlate, &v.Company, &v.Observation, &v.Invoice, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Visitor{}, domain.ErrNotFound
		}
		return domain.Visitor{}, err
	}

	v.ID = uuid.UUID(id.Bytes)
	if exitTime.Valid {
		t := exitTime.Time
		v.ExitTime = &t
	}

	return v, nil
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
