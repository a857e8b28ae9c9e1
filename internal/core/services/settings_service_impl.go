package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// settingsServiceImpl implements the SettingsSvcFacade interface.
type settingsServiceImpl struct {
	BaseService
	settingsRepo portsrepo.SettingsRepository
}

// NewSettingsServiceImpl creates a new settings service.
func NewSettingsServiceImpl(repo portsrepo.SettingsRepository) portssvc.SettingsSvcFacade {
	return &settingsServiceImpl{settingsRepo: repo}
}

var _ portssvc.SettingsSvcFacade = (*settingsServiceImpl)(nil)

func (s *settingsServiceImpl) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings")
		return nil, err
	}
	return settings, nil
}

func (s *settingsServiceImpl) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (*domain.UserSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.BudgetAlertThreshold != nil {
		t := *req.BudgetAlertThreshold
		if t < 0 || t > 1 {
			return nil, fmt.Errorf("%w: budget alert threshold %v is outside [0,1]", apperrors.ErrValidation, t)
		}
		settings.BudgetAlertThreshold = t
	}
	if req.PrimaryCurrency != nil {
		settings.PrimaryCurrency = *req.PrimaryCurrency
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *req.NotificationsEnabled
	}

	settings.LastUpdatedAt = time.Now().UTC()

	if err := s.settingsRepo.UpdateSettings(ctx, *settings); err != nil {
		s.LogError(ctx, err, "Failed to update settings")
		return nil, err
	}

	s.LogInfo(ctx, "Settings updated")
	return settings, nil
}
