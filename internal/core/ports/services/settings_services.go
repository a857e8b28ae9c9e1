package services

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// SettingsSvcFacade manages the per-installation settings singleton.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.UserSettings, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.UserSettings, error)
}
