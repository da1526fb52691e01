// FilePath: internal/hubservice/hubservice.settings.go
package hubservice

import (
	"context"
	"time"

	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/models"
	"github.com/hydrosense/hub/internal/validation"
)

// GetSettings returns the caller's persisted settings row, or the unsaved
// defaults when none exists. The Persisted flag tells the two states apart;
// the read path never writes the default row.
func (s *HubService) GetSettings(ctx context.Context, userID string) (*models.SettingsView, error) {
	setting, err := s.Settings.GetByUser(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return &models.SettingsView{
				Settings:  models.DefaultNotificationSetting(userID),
				Persisted: false,
			}, nil
		}
		return nil, err
	}

	return &models.SettingsView{Settings: setting, Persisted: true}, nil
}

// UpdateSettings creates or replaces the caller's settings row. The unique
// constraint on user_id keeps concurrent updates from producing duplicates.
func (s *HubService) UpdateSettings(ctx context.Context, userID string, in *validation.SettingsInput) (*models.NotificationSetting, error) {
	setting := &models.NotificationSetting{
		UserID:             userID,
		EmailNotifications: in.EmailNotifications,
		TempMinThreshold:   in.TempMinThreshold,
		TempMaxThreshold:   in.TempMaxThreshold,
		UpdatedAt:          time.Now().UTC(),
	}

	if err := s.Settings.Upsert(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}
