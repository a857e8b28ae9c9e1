package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// settingsRowID is the fixed key of the per-installation singleton row,
// seeded by the initial migration.
const settingsRowID = "default"

// PgxSettingsRepository persists the settings singleton in PostgreSQL.
type PgxSettingsRepository struct {
	baseRepository
}

// NewSettingsRepository creates a new repository for settings data.
func NewSettingsRepository(pool *pgxpool.Pool) *PgxSettingsRepository {
	return &PgxSettingsRepository{baseRepository{pool: pool}}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// GetSettings retrieves the settings singleton.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	query := `
		SELECT primary_currency, theme, notifications_enabled, budget_alert_threshold, created_at, last_updated_at
		FROM user_settings WHERE id = $1;
	`
	var s domain.UserSettings
	err := r.pool.QueryRow(ctx, query, settingsRowID).Scan(
		&s.PrimaryCurrency,
		&s.Theme,
		&s.NotificationsEnabled,
		&s.BudgetAlertThreshold,
		&s.CreatedAt,
		&s.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &s, nil
}

// UpdateSettings rewrites the settings singleton.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings domain.UserSettings) error {
	query := `
		UPDATE user_settings
		SET primary_currency = $2, theme = $3, notifications_enabled = $4, budget_alert_threshold = $5, last_updated_at = $6
		WHERE id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		settingsRowID,
		settings.PrimaryCurrency,
		settings.Theme,
		settings.NotificationsEnabled,
		settings.BudgetAlertThreshold,
		settings.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
