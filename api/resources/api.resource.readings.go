// FilePath: api/resources/api.resource.readings.go
package resources

import (
	"net/http"

	"github.com/hydrosense/hub/api/middleware"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/hubservice"
	"github.com/hydrosense/hub/internal/validation"
	nuts "github.com/vaudience/go-nuts"
)

// ReadingHandlers encapsulates the sensor reading intake handler
type ReadingHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Store a sensor reading
// @Description Accept a reading submission from a device or browser session
// @Tags readings
// @Accept json
// @Produce json
// @Param reading body validation.ReadingInput true "Reading values"
// @Success 201 {object} map[string]any
// @Failure 422 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /api/sensor-readings [post]
// @Security BearerAuth
func (h *ReadingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no authenticated principal", nil).WithRequestID(requestID))
		return
	}

	payload, err := decodeBody(r)
	if err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	input, fieldErrs := validation.ValidateReading(payload)
	if fieldErrs != nil {
		respondWithError(w, errors.NewValidationError("The given data was invalid.", nil).
			WithDetails(fieldErrs).WithRequestID(requestID))
		return
	}

	reading, err := h.hubservice.RecordReading(r.Context(), principal.UserID, input)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to store sensor reading", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Sensor reading stored successfully",
		"data":    reading,
	})
}
