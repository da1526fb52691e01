// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hydrosense/hub/api/middleware"
	"github.com/hydrosense/hub/api/resources"
	"github.com/hydrosense/hub/internal/hubservice"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.AuthMiddleware
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, auth *middleware.AuthMiddleware) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      auth,
		resources: resources.NewResources(svc),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Public routes
	r.router.HandleFunc("/health-check", r.resources.HealthCheck).Methods(http.MethodGet)

	// Protected routes
	protected := r.router.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	// Dashboard views
	protected.HandleFunc("/iot", r.resources.Dashboard.Show).Methods(http.MethodGet)
	protected.HandleFunc("/sensor-data", r.resources.Dashboard.Search).Methods(http.MethodGet)

	// Notification settings
	protected.HandleFunc("/notifications", r.resources.Settings.Show).Methods(http.MethodGet)
	protected.HandleFunc("/notifications", r.resources.Settings.Update).Methods(http.MethodPatch)

	// Device intake
	protected.HandleFunc("/api/sensor-readings", r.resources.Readings.Create).Methods(http.MethodPost)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
