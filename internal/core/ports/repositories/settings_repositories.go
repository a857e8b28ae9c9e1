package repositories

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
)

// SettingsRepository defines persistence operations for the per-installation
// settings singleton.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, settings domain.UserSettings) error
}
