// FilePath: internal/models/models.settings.go
package models

import "time"

// Default alert thresholds shown when a user has never saved settings.
const (
	DefaultTempMinThreshold = 0.00
	DefaultTempMaxThreshold = 35.00
)

// NotificationSetting holds a user's alerting preferences. At most one row
// exists per user; updates go through an upsert keyed on user_id.
type NotificationSetting struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"user_id" db:"user_id"`
	EmailNotifications bool      `json:"email_notifications" db:"email_notifications"`
	TempMinThreshold   float64   `json:"temp_min_threshold" db:"temp_min_threshold"`
	TempMaxThreshold   float64   `json:"temp_max_threshold" db:"temp_max_threshold"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultNotificationSetting returns the unsaved defaults for a user. The
// read path never persists this; it only exists for presentation.
func DefaultNotificationSetting(userID string) *NotificationSetting {
	return &NotificationSetting{
		UserID:             userID,
		EmailNotifications: true,
		TempMinThreshold:   DefaultTempMinThreshold,
		TempMaxThreshold:   DefaultTempMaxThreshold,
	}
}

// SettingsView distinguishes a persisted settings row from the default
// placeholder so callers never have to guess which one they got.
type SettingsView struct {
	Settings  *NotificationSetting `json:"settings"`
	Persisted bool                 `json:"persisted"`
}
