// FilePath: internal/hubservice/hubservice.readings.go
package hubservice

import (
	"context"
	"time"

	"github.com/hydrosense/hub/internal/alert"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/models"
	"github.com/hydrosense/hub/internal/validation"
	nuts "github.com/vaudience/go-nuts"
)

// RecordReading persists a validated submission for the given user and then
// evaluates the owner's temperature thresholds. Alerting runs synchronously
// but can only log and emit events; a failed delivery never fails the write.
func (s *HubService) RecordReading(ctx context.Context, userID string, in *validation.ReadingInput) (*models.SensorReading, error) {
	reading := &models.SensorReading{
		ID:          nuts.NID("sr", 12),
		UserID:      userID,
		Temperature: in.Temperature,
		Humidity:    in.Humidity,
		WaterLevel:  in.WaterLevel,
		DeviceID:    in.DeviceID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.Readings.Create(ctx, reading); err != nil {
		return nil, err
	}

	s.evaluateThresholds(ctx, reading)
	return reading, nil
}

func (s *HubService) evaluateThresholds(ctx context.Context, reading *models.SensorReading) {
	settings, err := s.Settings.GetByUser(ctx, reading.UserID)
	if err != nil {
		if !errors.IsNotFound(err) {
			nuts.L.Warnf("[HubService] Failed to load settings for alert check on reading %s: %v", reading.ID, err)
		}
		// No settings row means no alerting for this user.
		return
	}

	violation, breached := alert.Evaluate(reading, settings)
	if !breached {
		return
	}

	s.Alerts.Dispatch(ctx, reading.UserID, reading, violation)
}

// Dashboard assembles the full dashboard view for one user: the latest ten
// readings, the trailing-24h chart series, a page of the raw table and the
// single most recent reading.
func (s *HubService) Dashboard(ctx context.Context, userID string, page int) (*models.DashboardView, error) {
	latest, err := s.Readings.Latest(ctx, userID, LatestReadingsLimit)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-24 * time.Hour)
	recent, err := s.Readings.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	chart := make([]models.ChartPoint, 0, len(recent))
	for _, reading := range recent {
		chart = append(chart, models.ChartPointFromReading(reading))
	}

	total, rows, err := s.Readings.ListPage(ctx, userID, "", page, DashboardPageSize)
	if err != nil {
		return nil, err
	}

	current, err := s.Readings.Current(ctx, userID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		// Absent current reading is a valid state, not an error.
		current = nil
	}

	return &models.DashboardView{
		LatestReadings: latest,
		ChartData:      chart,
		AllReadings:    models.NewReadingPage(rows, page, DashboardPageSize, total),
		CurrentReading: current,
	}, nil
}

// SearchReadings returns a page of the user's readings filtered by device id
// substring, echoing the active search term.
func (s *HubService) SearchReadings(ctx context.Context, userID, search string, page int) (*models.SearchView, error) {
	total, rows, err := s.Readings.ListPage(ctx, userID, search, page, SearchPageSize)
	if err != nil {
		return nil, err
	}

	return &models.SearchView{
		Readings: models.NewReadingPage(rows, page, SearchPageSize, total),
		Search:   search,
	}, nil
}
