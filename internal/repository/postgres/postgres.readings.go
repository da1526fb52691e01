// FilePath: internal/repository/postgres/postgres.readings.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hydrosense/hub/internal/database"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/models"
)

type SensorReadingRepo struct {
	db database.DB
}

func NewSensorReadingRepository(db database.DB) *SensorReadingRepo {
	return &SensorReadingRepo{db: db}
}

// InitSchema creates the readings table and its lookup indexes. Called once
// during server startup, before any traffic is served.
func (r *SensorReadingRepo) InitSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sensor_readings (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			temperature NUMERIC(5,2) NOT NULL,
			humidity NUMERIC(5,2) NOT NULL,
			water_level NUMERIC(8,2) NOT NULL,
			device_id TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_user
			ON sensor_readings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_device
			ON sensor_readings(device_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_created
			ON sensor_readings(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_readings_user_created
			ON sensor_readings(user_id, created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().ExecContext(ctx, query); err != nil {
			return errors.NewDatabaseError("failed to initialize readings schema", err)
		}
	}
	return nil
}

func (r *SensorReadingRepo) Create(ctx context.Context, reading *models.SensorReading) error {
	query := `
		INSERT INTO sensor_readings (
			id, user_id, temperature, humidity, water_level, device_id, created_at
		) VALUES (
			:id, :user_id, :temperature, :humidity, :water_level, :device_id, :created_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, reading)
	if err != nil {
		return errors.NewDatabaseError("failed to create sensor reading", err)
	}
	return nil
}

func (r *SensorReadingRepo) Latest(ctx context.Context, userID string, limit int) ([]*models.SensorReading, error) {
	readings := []*models.SensorReading{}
	query := `
		SELECT id, user_id, temperature, humidity, water_level, device_id, created_at
		FROM sensor_readings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, userID, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get latest readings", err)
	}
	return readings, nil
}

func (r *SensorReadingRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]*models.SensorReading, error) {
	readings := []*models.SensorReading{}
	query := `
		SELECT id, user_id, temperature, humidity, water_level, device_id, created_at
		FROM sensor_readings
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at ASC`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, userID, since)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get readings since", err)
	}
	return readings, nil
}

// ListPage returns one page of readings newest-first plus the total row
// count for the active filter. The device_id filter is a substring match
// with the store's default case sensitivity.
func (r *SensorReadingRepo) ListPage(ctx context.Context, userID, search string, page, perPage int) (int64, []*models.SensorReading, error) {
	countQuery := `SELECT COUNT(*) FROM sensor_readings WHERE user_id = $1`
	listQuery := `
		SELECT id, user_id, temperature, humidity, water_level, device_id, created_at
		FROM sensor_readings
		WHERE user_id = $1`

	args := []interface{}{userID}
	if search != "" {
		countQuery += ` AND device_id LIKE $2`
		listQuery += ` AND device_id LIKE $2`
		args = append(args, "%"+search+"%")
	}
	listQuery += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)

	var total int64
	if err := r.db.GetDB().GetContext(ctx, &total, countQuery, args...); err != nil {
		return 0, nil, errors.NewDatabaseError("failed to count readings", err)
	}

	readings := []*models.SensorReading{}
	args = append(args, perPage, (page-1)*perPage)
	if err := r.db.GetDB().SelectContext(ctx, &readings, listQuery, args...); err != nil {
		return 0, nil, errors.NewDatabaseError("failed to list readings", err)
	}

	return total, readings, nil
}

func (r *SensorReadingRepo) Current(ctx context.Context, userID string) (*models.SensorReading, error) {
	reading := &models.SensorReading{}
	query := `
		SELECT id, user_id, temperature, humidity, water_level, device_id, created_at
		FROM sensor_readings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, reading, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no readings recorded", err)
		}
		return nil, errors.NewDatabaseError("failed to get current reading", err)
	}
	return reading, nil
}
