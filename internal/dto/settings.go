package dto

import (
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
)

// UpdateSettingsRequest defines the mutable user preferences. The alert
// threshold is a fraction in [0,1].
type UpdateSettingsRequest struct {
	PrimaryCurrency      *string       `json:"primaryCurrency" binding:"omitempty,len=3"`
	Theme                *domain.Theme `json:"theme" binding:"omitempty,oneof=LIGHT DARK SYSTEM"`
	NotificationsEnabled *bool         `json:"notificationsEnabled"`
	BudgetAlertThreshold *float64      `json:"budgetAlertThreshold"`
}

// SettingsResponse defines the data returned for user settings.
type SettingsResponse struct {
	PrimaryCurrency      string       `json:"primaryCurrency"`
	Theme                domain.Theme `json:"theme"`
	NotificationsEnabled bool         `json:"notificationsEnabled"`
	BudgetAlertThreshold float64      `json:"budgetAlertThreshold"`
	LastUpdatedAt        time.Time    `json:"lastUpdatedAt"`
}

// ToSettingsResponse converts domain.UserSettings to its response DTO.
func ToSettingsResponse(s *domain.UserSettings) SettingsResponse {
	return SettingsResponse{
		PrimaryCurrency:      s.PrimaryCurrency,
		Theme:                s.Theme,
		NotificationsEnabled: s.NotificationsEnabled,
		BudgetAlertThreshold: s.BudgetAlertThreshold,
		LastUpdatedAt:        s.LastUpdatedAt,
	}
}
