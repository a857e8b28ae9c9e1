package domain

// Theme selects the client colour scheme.
type Theme string

const (
	ThemeLight  Theme = "LIGHT"
	ThemeDark   Theme = "DARK"
	ThemeSystem Theme = "SYSTEM"
)

// UserSettings is the per-installation singleton of user preferences.
// BudgetAlertThreshold is a fraction in [0,1]; a budget whose percent-used
// reaches the threshold is reported as over-threshold.
type UserSettings struct {
	PrimaryCurrency      string  `json:"primaryCurrency"`
	Theme                Theme   `json:"theme"`
	NotificationsEnabled bool    `json:"notificationsEnabled"`
	BudgetAlertThreshold float64 `json:"budgetAlertThreshold"`
	AuditFields
}
