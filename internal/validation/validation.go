// FilePath: internal/validation/validation.go
package validation

import (
	"encoding/json"
	"strconv"
)

// FieldErrors maps a field name to the messages for every rule it violated.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// ReadingInput is a validated sensor reading submission.
type ReadingInput struct {
	Temperature float64
	Humidity    float64
	WaterLevel  float64
	DeviceID    string
}

// SettingsInput is a validated notification settings update.
type SettingsInput struct {
	EmailNotifications bool
	TempMinThreshold   float64
	TempMaxThreshold   float64
}

// ValidateReading checks a decoded request body against the intake rules.
// All four fields are required; every violated rule produces its own
// message so the caller sees the complete picture in one response.
func ValidateReading(payload map[string]any) (*ReadingInput, FieldErrors) {
	errs := FieldErrors{}

	temperature := requireNumber(payload, "temperature", "Temperature reading is required.", "Temperature must be a number.", errs)
	if temperature != nil && (*temperature < -100 || *temperature > 200) {
		errs.Add("temperature", "Temperature must be between -100°C and 200°C.")
	}

	humidity := requireNumber(payload, "humidity", "Humidity reading is required.", "Humidity must be a number.", errs)
	if humidity != nil && (*humidity < 0 || *humidity > 100) {
		errs.Add("humidity", "Humidity must be between 0% and 100%.")
	}

	waterLevel := requireNumber(payload, "water_level", "Water level reading is required.", "Water level must be a number.", errs)
	if waterLevel != nil {
		if *waterLevel < 0 {
			errs.Add("water_level", "Water level cannot be negative.")
		}
		if *waterLevel > 99999.99 {
			errs.Add("water_level", "Water level may not be greater than 99999.99.")
		}
	}

	deviceID := requireString(payload, "device_id", "Device ID is required.", errs)
	if deviceID != nil && len(*deviceID) > 255 {
		errs.Add("device_id", "Device ID may not be greater than 255 characters.")
	}

	if !errs.Empty() {
		return nil, errs
	}

	return &ReadingInput{
		Temperature: *temperature,
		Humidity:    *humidity,
		WaterLevel:  *waterLevel,
		DeviceID:    *deviceID,
	}, nil
}

// ValidateSettings checks a decoded request body against the settings rules.
// The max threshold must be strictly greater than the submitted min.
func ValidateSettings(payload map[string]any) (*SettingsInput, FieldErrors) {
	errs := FieldErrors{}

	emailNotifications := requireBool(payload, "email_notifications",
		"Email notification preference is required.",
		"Email notification preference must be true or false.", errs)

	tempMin := requireNumber(payload, "temp_min_threshold",
		"Minimum temperature threshold is required.",
		"Minimum temperature must be a number.", errs)
	if tempMin != nil && (*tempMin < -100 || *tempMin > 200) {
		errs.Add("temp_min_threshold", "Minimum temperature must be between -100°C and 200°C.")
	}

	tempMax := requireNumber(payload, "temp_max_threshold",
		"Maximum temperature threshold is required.",
		"Maximum temperature must be a number.", errs)
	if tempMax != nil {
		if *tempMax < -100 || *tempMax > 200 {
			errs.Add("temp_max_threshold", "Maximum temperature must be between -100°C and 200°C.")
		}
		if tempMin != nil && *tempMax <= *tempMin {
			errs.Add("temp_max_threshold", "Maximum temperature must be greater than minimum temperature.")
		}
	}

	if !errs.Empty() {
		return nil, errs
	}

	return &SettingsInput{
		EmailNotifications: *emailNotifications,
		TempMinThreshold:   *tempMin,
		TempMaxThreshold:   *tempMax,
	}, nil
}

// requireNumber extracts a numeric field. Bodies are decoded with
// json.Decoder.UseNumber, so JSON numbers arrive as json.Number; plain
// float64 and numeric strings from form-style clients are accepted too.
func requireNumber(payload map[string]any, field, requiredMsg, numericMsg string, errs FieldErrors) *float64 {
	raw, ok := payload[field]
	if !ok || raw == nil {
		errs.Add(field, requiredMsg)
		return nil
	}

	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			errs.Add(field, numericMsg)
			return nil
		}
		return &f
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs.Add(field, numericMsg)
			return nil
		}
		return &f
	default:
		errs.Add(field, numericMsg)
		return nil
	}
}

func requireString(payload map[string]any, field, requiredMsg string, errs FieldErrors) *string {
	raw, ok := payload[field]
	if !ok || raw == nil {
		errs.Add(field, requiredMsg)
		return nil
	}

	s, ok := raw.(string)
	if !ok || s == "" {
		errs.Add(field, requiredMsg)
		return nil
	}
	return &s
}

func requireBool(payload map[string]any, field, requiredMsg, boolMsg string, errs FieldErrors) *bool {
	raw, ok := payload[field]
	if !ok || raw == nil {
		errs.Add(field, requiredMsg)
		return nil
	}

	switch v := raw.(type) {
	case bool:
		return &v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add(field, boolMsg)
			return nil
		}
		return &b
	default:
		errs.Add(field, boolMsg)
		return nil
	}
}
