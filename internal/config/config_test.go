// FilePath: internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("HYDROSENSE_DATABASE__HOST", "db.local")
	t.Setenv("HYDROSENSE_REDIS__HOST", "redis.local")
	t.Setenv("HYDROSENSE_AUTH__DEVICE_TOKEN_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "redis.local", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)

	assert.Equal(t, "session:", cfg.Auth.SessionPrefix)
	assert.Equal(t, "test-secret", cfg.Auth.DeviceTokenSecret)

	assert.Equal(t, 5*time.Second, cfg.Alerts.WebhookTimeout)
	assert.Empty(t, cfg.Alerts.WebhookURL)

	assert.Equal(t, "info", cfg.Monitoring.LogLevel)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	viper.Reset()
	setRequiredEnv(t)
	t.Setenv("HYDROSENSE_SERVER__PORT", "9090")
	t.Setenv("HYDROSENSE_DATABASE__DBNAME", "hydrosense_test")
	t.Setenv("HYDROSENSE_ALERTS__WEBHOOK_URL", "https://alerts.example.com/hook")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "hydrosense_test", cfg.Database.DBName)
	assert.Equal(t, "https://alerts.example.com/hook", cfg.Alerts.WebhookURL)
}

func TestLoadRequiresDatabaseHost(t *testing.T) {
	viper.Reset()
	t.Setenv("HYDROSENSE_REDIS__HOST", "redis.local")
	t.Setenv("HYDROSENSE_AUTH__DEVICE_TOKEN_SECRET", "test-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database host is required")
}

func TestLoadRequiresDeviceTokenSecret(t *testing.T) {
	viper.Reset()
	t.Setenv("HYDROSENSE_DATABASE__HOST", "db.local")
	t.Setenv("HYDROSENSE_REDIS__HOST", "redis.local")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device token secret is required")
}
