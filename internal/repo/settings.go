package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rmfarias/gatekeeper/backend/internal/domain"
)

// SettingsRepo defines the persistence operations for the Settings singleton.
// The single row is seeded by migration, so Get never legitimately misses.
type SettingsRepo interface {
	// Get retrieves the settings row.
	Get(ctx context.Context) (domain.Settings, error)

	// Update overwrites all settings fields and returns the updated record.
	Update(ctx context.Context, s domain.Settings) (domain.Settings, error)
}

// pgSettingsRepo is the Postgres implementation of SettingsRepo.
type pgSettingsRepo struct {
	db db
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided db connection.
func NewSettingsRepo(db db) SettingsRepo {
	return &pgSettingsRepo{db: db}
}

func (r *pgSettingsRepo) Get(ctx context.Context) (domain.Settings, error) {
	const q = `SELECT server_ip, server_port, backend_port, updated_at FROM settings WHERE singleton`

	result, err := scanSettings(r.db.QueryRow(ctx, q))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("repo.SettingsRepo.Get: %w", err)
	}
	return result, nil
}

func (r *pgSettingsRepo) Update(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	const q = `
		UPDATE settings
		SET server_ip    = @server_ip,
		    server_port  = @server_port,
		    backend_port = @backend_port,
		    updated_at   = now()
		WHERE singleton
		RETURNING server_ip, server_port, backend_port, updated_at`

	args := pgx.NamedArgs{
		"server_ip":    s.ServerIP,
		"server_port":  s.ServerPort,
		"backend_port": s.BackendPort,
	}

	result, err := scanSettings(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("repo.SettingsRepo.Update: %w", err)
	}
	return result, nil
}

// scanSettings maps the settings row into a domain.Settings.
func scanSettings(sc scanner) (domain.Settings, error) {
	var s domain.Settings
	if err := sc.Scan(&s.ServerIP, &s.ServerPort, &s.BackendPort, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Settings{}, domain.ErrNotFound
		}
		return domain.Settings{}, err
	}
	return s, nil
}
