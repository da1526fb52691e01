// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hydrosense/hub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// SensorReadingRepository defines the interface for reading storage. Every
// query is scoped to one owning user; there is no cross-tenant access path.
type SensorReadingRepository interface {
	Create(ctx context.Context, reading *models.SensorReading) error
	Latest(ctx context.Context, userID string, limit int) ([]*models.SensorReading, error)
	ListSince(ctx context.Context, userID string, since time.Time) ([]*models.SensorReading, error)
	ListPage(ctx context.Context, userID, search string, page, perPage int) (int64, []*models.SensorReading, error)
	Current(ctx context.Context, userID string) (*models.SensorReading, error)
}

// NotificationSettingRepository defines the interface for alert settings.
// Upsert is atomic per user via the unique constraint on user_id.
type NotificationSettingRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.NotificationSetting, error)
	Upsert(ctx context.Context, setting *models.NotificationSetting) error
}
