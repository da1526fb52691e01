// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"github.com/hydrosense/hub/internal/alert"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/repository"
)

// Page sizes for the three read surfaces.
const (
	LatestReadingsLimit = 10
	DashboardPageSize   = 20
	SearchPageSize      = 50
)

// HubService contains all repositories and service-wide dependencies
type HubService struct {
	Readings repository.SensorReadingRepository
	Settings repository.NotificationSettingRepository
	Alerts   *alert.Dispatcher
}

// New creates a new HubService instance
func New(
	readings repository.SensorReadingRepository,
	settings repository.NotificationSettingRepository,
	alerts *alert.Dispatcher,
) *HubService {
	return &HubService{
		Readings: readings,
		Settings: settings,
		Alerts:   alerts,
	}
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Readings == nil {
		return ErrMissingDependency("readings")
	}
	if s.Settings == nil {
		return ErrMissingDependency("settings")
	}
	if s.Alerts == nil {
		return ErrMissingDependency("alerts")
	}
	return nil
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
