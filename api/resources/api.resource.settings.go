// FilePath: api/resources/api.resource.settings.go
package resources

import (
	"net/http"

	"github.com/hydrosense/hub/api/middleware"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/hubservice"
	"github.com/hydrosense/hub/internal/validation"
	nuts "github.com/vaudience/go-nuts"
)

// SettingsHandlers encapsulates the notification settings HTTP handlers
type SettingsHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Notification settings
// @Description The caller's settings row, or the unsaved defaults when none exists
// @Tags settings
// @Produce json
// @Success 200 {object} models.SettingsView
// @Failure 401 {object} errors.APIError
// @Router /notifications [get]
// @Security BearerAuth
func (h *SettingsHandlers) Show(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no authenticated principal", nil).WithRequestID(requestID))
		return
	}

	view, err := h.hubservice.GetSettings(r.Context(), principal.UserID)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to load notification settings", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Update notification settings
// @Description Create or replace the caller's single settings row
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body validation.SettingsInput true "Settings values"
// @Success 200 {object} map[string]any
// @Failure 422 {object} errors.APIError
// @Failure 401 {object} errors.APIError
// @Router /notifications [patch]
// @Security BearerAuth
func (h *SettingsHandlers) Update(w http.ResponseWriter, r *http.Request) {
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

	input, fieldErrs := validation.ValidateSettings(payload)
	if fieldErrs != nil {
		respondWithError(w, errors.NewValidationError("The given data was invalid.", nil).
			WithDetails(fieldErrs).WithRequestID(requestID))
		return
	}

	setting, err := h.hubservice.UpdateSettings(r.Context(), principal.UserID, input)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to update notification settings", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Notification settings updated successfully.",
		"settings": setting,
	})
}
