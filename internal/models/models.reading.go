// FilePath: internal/models/models.reading.go
package models

import "time"

// SensorReading is a single timestamped observation reported by a device.
// Readings are immutable once stored; there is no update or delete path.
type SensorReading struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Temperature float64   `json:"temperature" db:"temperature"`
	Humidity    float64   `json:"humidity" db:"humidity"`
	WaterLevel  float64   `json:"water_level" db:"water_level"`
	DeviceID    string    `json:"device_id" db:"device_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
