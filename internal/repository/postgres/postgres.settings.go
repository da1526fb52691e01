// FilePath: internal/repository/postgres/postgres.settings.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/hydrosense/hub/internal/database"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type NotificationSettingRepo struct {
	db database.DB
}

func NewNotificationSettingRepository(db database.DB) *NotificationSettingRepo {
	return &NotificationSettingRepo{db: db}
}

// InitSchema creates the settings table. The unique constraint on user_id is
// what makes concurrent upserts safe without application-level locking.
func (r *NotificationSettingRepo) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS notification_settings (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			email_notifications BOOLEAN NOT NULL DEFAULT TRUE,
			temp_min_threshold NUMERIC(5,2) NOT NULL DEFAULT 0.00,
			temp_max_threshold NUMERIC(5,2) NOT NULL DEFAULT 35.00,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notification_settings_email
			ON notification_settings(email_notifications)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().ExecContext(ctx, query); err != nil {
			return errors.NewDatabaseError("failed to initialize settings schema", err)
		}
	}
	return nil
}

func (r *NotificationSettingRepo) GetByUser(ctx context.Context, userID string) (*models.NotificationSetting, error) {
	setting := &models.NotificationSetting{}
	query := `
		SELECT id, user_id, email_notifications, temp_min_threshold, temp_max_threshold, created_at, updated_at
		FROM notification_settings
		WHERE user_id = $1`

	err := r.db.GetDB().GetContext(ctx, setting, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("notification settings not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get notification settings", err)
	}
	return setting, nil
}

// Upsert creates or replaces the caller's single settings row. Repeating the
// same payload is idempotent: the conflict clause rewrites the existing row
// and the stored id and created_at are echoed back into the model.
func (r *NotificationSettingRepo) Upsert(ctx context.Context, setting *models.NotificationSetting) error {
	if setting.ID == "" {
		setting.ID = nuts.NID("ns", 12)
	}

	query := `
		INSERT INTO notification_settings (
			id, user_id, email_notifications, temp_min_threshold, temp_max_threshold, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			email_notifications = EXCLUDED.email_notifications,
			temp_min_threshold = EXCLUDED.temp_min_threshold,
			temp_max_threshold = EXCLUDED.temp_max_threshold,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at`

	row := r.db.GetDB().QueryRowContext(ctx, query,
		setting.ID, setting.UserID, setting.EmailNotifications,
		setting.TempMinThreshold, setting.TempMaxThreshold, setting.UpdatedAt,
	)
	if err := row.Scan(&setting.ID, &setting.CreatedAt, &setting.UpdatedAt); err != nil {
		return errors.NewDatabaseError("failed to upsert notification settings", err)
	}
	return nil
}
