// FilePath: internal/alert/evaluator.go
package alert

import (
	"github.com/hydrosense/hub/internal/models"
)

// ViolationKind says which side of the threshold window was crossed.
type ViolationKind string

const (
	ViolationBelowMin ViolationKind = "below_min"
	ViolationAboveMax ViolationKind = "above_max"
)

// Violation describes a single threshold breach.
type Violation struct {
	Kind      ViolationKind `json:"kind"`
	Threshold float64       `json:"threshold"`
}

// Evaluate compares a reading's temperature against the owner's thresholds.
// Absent settings or disabled notifications mean no alert. The check is
// stateless: the same reading and settings always yield the same decision.
func Evaluate(reading *models.SensorReading, settings *models.NotificationSetting) (Violation, bool) {
	if settings == nil || !settings.EmailNotifications {
		return Violation{}, false
	}

	if reading.Temperature < settings.TempMinThreshold {
		return Violation{Kind: ViolationBelowMin, Threshold: settings.TempMinThreshold}, true
	}
	if reading.Temperature > settings.TempMaxThreshold {
		return Violation{Kind: ViolationAboveMax, Threshold: settings.TempMaxThreshold}, true
	}
	return Violation{}, false
}
