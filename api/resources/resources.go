// FilePath: api/resources/resources.go
package resources

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"github.com/hydrosense/hub/internal/errors"
	"github.com/hydrosense/hub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Dashboard *DashboardHandlers
	Readings  *ReadingHandlers
	Settings  *SettingsHandlers
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService) *Resources {
	return &Resources{
		Dashboard: &DashboardHandlers{hubservice: svc},
		Readings:  &ReadingHandlers{hubservice: svc},
		Settings:  &SettingsHandlers{hubservice: svc},
	}
}

// @Summary Health check
// @Description Liveness probe, requires no authentication
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health-check [get]
func (res *Resources) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Helper functions

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return decoder
}

type listQuery struct {
	Search string `schema:"search"`
	Page   int    `schema:"page"`
}

func parseListQuery(r *http.Request) listQuery {
	var query listQuery
	// Malformed query values just fall back to defaults.
	_ = queryDecoder.Decode(&query, r.URL.Query())
	if query.Page < 1 {
		query.Page = 1
	}
	return query
}

// decodeBody reads a JSON body into a generic map, keeping numbers as
// json.Number so the validation layer can distinguish a wrong type from an
// out-of-range value per field.
func decodeBody(r *http.Request) (map[string]any, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	payload := map[string]any{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
