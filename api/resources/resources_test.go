// FilePath: api/resources/resources_test.go
package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hydrosense/hub/api/middleware"
	"github.com/hydrosense/hub/internal/alert"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/hubservice"
	"github.com/hydrosense/hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memReadingRepo is a minimal in-memory reading store for handler tests.
type memReadingRepo struct {
	mu       sync.Mutex
	readings []*models.SensorReading
}

func (r *memReadingRepo) Create(_ context.Context, reading *models.SensorReading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append([]*models.SensorReading{reading}, r.readings...)
	return nil
}

func (r *memReadingRepo) forUser(userID, search string) []*models.SensorReading {
	var out []*models.SensorReading
	for _, reading := range r.readings {
		if reading.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(reading.DeviceID, search) {
			continue
		}
		out = append(out, reading)
	}
	return out
}

func (r *memReadingRepo) Latest(_ context.Context, userID string, limit int) ([]*models.SensorReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.forUser(userID, "")
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *memReadingRepo) ListSince(_ context.Context, userID string, since time.Time) ([]*models.SensorReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SensorReading
	for _, reading := range r.forUser(userID, "") {
		if !reading.CreatedAt.Before(since) {
			out = append(out, reading)
		}
	}
	return out, nil
}

func (r *memReadingRepo) ListPage(_ context.Context, userID, search string, page, perPage int) (int64, []*models.SensorReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.forUser(userID, search)
	total := int64(len(rows))
	start := (page - 1) * perPage
	if start >= len(rows) {
		return total, nil, nil
	}
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	return total, rows[start:end], nil
}

func (r *memReadingRepo) Current(_ context.Context, userID string) (*models.SensorReading, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := r.forUser(userID, "")
	if len(rows) == 0 {
		return nil, errors.NewNotFoundError("no readings recorded", nil)
	}
	return rows[0], nil
}

type memSettingRepo struct {
	mu     sync.Mutex
	byUser map[string]*models.NotificationSetting
}

func (r *memSettingRepo) GetByUser(_ context.Context, userID string) (*models.NotificationSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	setting, ok := r.byUser[userID]
	if !ok {
		return nil, errors.NewNotFoundError("notification settings not found", nil)
	}
	return setting, nil
}

func (r *memSettingRepo) Upsert(_ context.Context, setting *models.NotificationSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byUser[setting.UserID]; ok {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
	} else {
		setting.ID = "ns_test"
		setting.CreatedAt = setting.UpdatedAt
	}
	r.byUser[setting.UserID] = setting
	return nil
}

func setupResources() (*Resources, *memReadingRepo, *memSettingRepo) {
	readings := &memReadingRepo{}
	settings := &memSettingRepo{byUser: map[string]*models.NotificationSetting{}}
	svc := hubservice.New(readings, settings, alert.NewDispatcher(alert.NewLogNotifier()))
	return NewResources(svc), readings, settings
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := middleware.WithPrincipal(req.Context(), &middleware.Principal{UserID: "user-1"})
	return req.WithContext(ctx)
}

func TestHealthCheck(t *testing.T) {
	res, _, _ := setupResources()

	req := httptest.NewRequest(http.MethodGet, "/health-check", nil)
	rec := httptest.NewRecorder()
	res.HealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestCreateReadingSuccess(t *testing.T) {
	res, readings, _ := setupResources()

	body := `{"temperature": 22.5, "humidity": 60, "water_level": 100.5, "device_id": "greenhouse-1"}`
	req := authedRequest(http.MethodPost, "/api/sensor-readings", body)
	rec := httptest.NewRecorder()
	res.Readings.Create(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Message string                `json:"message"`
		Data    *models.SensorReading `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Sensor reading stored successfully", resp.Message)
	assert.Equal(t, "user-1", resp.Data.UserID)
	assert.NotEmpty(t, resp.Data.ID)

	require.Len(t, readings.readings, 1)
}

func TestCreateReadingValidationFailureNamesEveryField(t *testing.T) {
	res, readings, _ := setupResources()

	body := `{"temperature": "invalid", "humidity": 150, "water_level": -10, "device_id": ""}`
	req := authedRequest(http.MethodPost, "/api/sensor-readings", body)
	rec := httptest.NewRecorder()
	res.Readings.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Type    string              `json:"type"`
		Message string              `json:"message"`
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation", resp.Type)
	assert.Equal(t, "The given data was invalid.", resp.Message)
	assert.Len(t, resp.Details, 4)
	assert.Contains(t, resp.Details, "temperature")
	assert.Contains(t, resp.Details, "humidity")
	assert.Contains(t, resp.Details, "water_level")
	assert.Contains(t, resp.Details, "device_id")

	// Nothing may be stored on a rejected submission.
	assert.Empty(t, readings.readings)
}

func TestCreateReadingMalformedBody(t *testing.T) {
	res, _, _ := setupResources()

	req := authedRequest(http.MethodPost, "/api/sensor-readings", `{not json`)
	rec := httptest.NewRecorder()
	res.Readings.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateReadingWithoutPrincipal(t *testing.T) {
	res, _, _ := setupResources()

	req := httptest.NewRequest(http.MethodPost, "/api/sensor-readings",
		strings.NewReader(`{"temperature": 22, "humidity": 60, "water_level": 1, "device_id": "d1"}`))
	rec := httptest.NewRecorder()
	res.Readings.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardShow(t *testing.T) {
	res, readings, _ := setupResources()
	now := time.Now().UTC()
	readings.readings = []*models.SensorReading{
		{ID: "sr_1", UserID: "user-1", DeviceID: "greenhouse-1", Temperature: 22, CreatedAt: now},
		{ID: "sr_2", UserID: "user-2", DeviceID: "greenhouse-1", Temperature: 30, CreatedAt: now},
	}

	req := authedRequest(http.MethodGet, "/iot", "")
	rec := httptest.NewRecorder()
	res.Dashboard.Show(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view models.DashboardView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.LatestReadings, 1)
	assert.Equal(t, "sr_1", view.LatestReadings[0].ID)
	require.NotNil(t, view.CurrentReading)
	assert.Equal(t, "sr_1", view.CurrentReading.ID)
	assert.Equal(t, int64(1), view.AllReadings.Total)
}

func TestSensorDataSearch(t *testing.T) {
	res, readings, _ := setupResources()
	now := time.Now().UTC()
	readings.readings = []*models.SensorReading{
		{ID: "sr_1", UserID: "user-1", DeviceID: "my_sensor", CreatedAt: now},
		{ID: "sr_2", UserID: "user-1", DeviceID: "other_sensor", CreatedAt: now},
	}

	req := authedRequest(http.MethodGet, "/sensor-data?search=my_sensor&page=1", "")
	rec := httptest.NewRecorder()
	res.Dashboard.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view models.SearchView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.Len(t, view.Readings.Data, 1)
	assert.Equal(t, "sr_1", view.Readings.Data[0].ID)
	assert.Equal(t, "my_sensor", view.Search)
}

func TestSensorDataDefaultsPageToOne(t *testing.T) {
	res, _, _ := setupResources()

	req := authedRequest(http.MethodGet, "/sensor-data?page=0", "")
	rec := httptest.NewRecorder()
	res.Dashboard.Search(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view models.SearchView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Readings.CurrentPage)
}

func TestSettingsShowReturnsDefaultsWhenUnsaved(t *testing.T) {
	res, _, _ := setupResources()

	req := authedRequest(http.MethodGet, "/notifications", "")
	rec := httptest.NewRecorder()
	res.Settings.Show(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view models.SettingsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.False(t, view.Persisted)
	assert.True(t, view.Settings.EmailNotifications)
	assert.Equal(t, 35.0, view.Settings.TempMaxThreshold)
}

func TestSettingsUpdate(t *testing.T) {
	res, _, settings := setupResources()

	body := `{"email_notifications": false, "temp_min_threshold": 5, "temp_max_threshold": 30}`
	req := authedRequest(http.MethodPatch, "/notifications", body)
	rec := httptest.NewRecorder()
	res.Settings.Update(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success  bool                        `json:"success"`
		Message  string                      `json:"message"`
		Settings *models.NotificationSetting `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Notification settings updated successfully.", resp.Message)
	assert.Equal(t, 5.0, resp.Settings.TempMinThreshold)

	require.Len(t, settings.byUser, 1)
	assert.False(t, settings.byUser["user-1"].EmailNotifications)
}

func TestSettingsUpdateRejectsInvertedThresholds(t *testing.T) {
	res, _, settings := setupResources()

	body := `{"email_notifications": true, "temp_min_threshold": 35, "temp_max_threshold": 10}`
	req := authedRequest(http.MethodPatch, "/notifications", body)
	rec := httptest.NewRecorder()
	res.Settings.Update(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Details map[string][]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Details["temp_max_threshold"],
		"Maximum temperature must be greater than minimum temperature.")
	assert.Empty(t, settings.byUser)
}
