package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsRepo implements port.SettingsStore backed by PostgreSQL. Each
// setting is one row keyed by name, updated in place.
type SettingsRepo struct {
	pool *pgxpool.Pool
}

// NewSettingsRepo creates a new repository backed by PostgreSQL.
func NewSettingsRepo(pool *pgxpool.Pool) *SettingsRepo {
	return &SettingsRepo{pool: pool}
}

// Get returns the raw value for key, with ok=false when no row exists.
func (r *SettingsRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM system_settings WHERE key = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

// Upsert writes the value for key, recording who changed it.
func (r *SettingsRepo) Upsert(ctx context.Context, key, value, actorID string) error {
	query := `
		INSERT INTO system_settings (key, value, updated_by, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE SET
			value      = EXCLUDED.value,
			updated_by = EXCLUDED.updated_by,
			updated_at = now()
	`
	if _, err := r.pool.Exec(ctx, query, key, value, actorID); err != nil {
		return fmt.Errorf("upsert setting %q: %w", key, err)
	}
	return nil
}
