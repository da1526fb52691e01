// FilePath: api/resources/api.resource.dashboard.go
package resources

import (
	"net/http"

	"github.com/hydrosense/hub/api/middleware"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// DashboardHandlers encapsulates the dashboard and table HTTP handlers
type DashboardHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary IoT dashboard
// @Description Latest readings, 24h chart series, paginated table and current reading for the caller
// @Tags dashboard
// @Produce json
// @Param page query int false "Page for the raw data table"
// @Success 200 {object} models.DashboardView
// @Failure 401 {object} errors.APIError
// @Router /iot [get]
// @Security BearerAuth
func (h *DashboardHandlers) Show(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no authenticated principal", nil).WithRequestID(requestID))
		return
	}

	query := parseListQuery(r)
	view, err := h.hubservice.Dashboard(r.Context(), principal.UserID, query.Page)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to build dashboard", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// @Summary Searchable sensor data table
// @Description Paginated readings for the caller, optionally filtered by device id substring
// @Tags dashboard
// @Produce json
// @Param search query string false "Device id substring filter"
// @Param page query int false "Page"
// @Success 200 {object} models.SearchView
// @Failure 401 {object} errors.APIError
// @Router /sensor-data [get]
// @Security BearerAuth
func (h *DashboardHandlers) Search(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		respondWithError(w, errors.NewAuthError("no authenticated principal", nil).WithRequestID(requestID))
		return
	}

	query := parseListQuery(r)
	view, err := h.hubservice.SearchReadings(r.Context(), principal.UserID, query.Search, query.Page)
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to search readings", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}
