// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/hydrosense/hub/api"
	"github.com/hydrosense/hub/api/middleware"
	"github.com/hydrosense/hub/internal/alert"
	"github.com/hydrosense/hub/internal/config"
	"github.com/hydrosense/hub/internal/database"
	"github.com/hydrosense/hub/internal/hubservice"
	"github.com/hydrosense/hub/internal/monitoring"
	"github.com/hydrosense/hub/internal/repository/postgres"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Server represents our HTTP server
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{config: cfg}
}

// Start wires the service together and begins listening for requests
func (s *Server) Start() error {
	// Initialize services
	s.hubservice = s.initializeHubService()
	s.monitoring = monitoring.NewService()

	// Keep alert delivery observable without ever failing a write
	s.setupAlertHandlers()

	sessions := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", s.config.Redis.Host, s.config.Redis.Port),
		Password: s.config.Redis.Password,
		DB:       s.config.Redis.DB,
	})
	auth := middleware.NewAuthMiddleware(sessions, middleware.AuthConfig{
		SessionPrefix:     s.config.Auth.SessionPrefix,
		DeviceTokenSecret: s.config.Auth.DeviceTokenSecret,
	})

	router := api.NewRouter(s.hubservice, auth)
	handler := handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(os.Stdout, router))

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      handler,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	// Start server
	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// waitForShutdown waits for interrupt signal and gracefully shuts down the server
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing database: %v", err)
		}
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}

func (s *Server) setupAlertHandlers() {
	s.hubservice.Alerts.OnAlert("alert.sent", func(channel string) {
		s.monitoring.RecordEvent("alert_sent", map[string]string{
			"channel": channel,
		})
	})

	s.hubservice.Alerts.OnAlert("alert.delivery_failed", func(channel string) {
		s.monitoring.RecordEvent("alert_delivery_failed", map[string]string{
			"channel": channel,
		})
	})
}

// initializeHubService creates and configures the hub service
func (s *Server) initializeHubService() *hubservice.HubService {
	db := initAppDB(s.config.Database)
	s.db = db

	readings := postgres.NewSensorReadingRepository(db)
	settings := postgres.NewNotificationSettingRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := readings.InitSchema(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize readings schema: %v", err)
	}
	if err := settings.InitSchema(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to initialize settings schema: %v", err)
	}

	notifiers := []alert.Notifier{alert.NewLogNotifier()}
	if s.config.Alerts.WebhookURL != "" {
		notifiers = append(notifiers, alert.NewWebhookNotifier(
			s.config.Alerts.WebhookURL, s.config.Alerts.WebhookTimeout))
	}

	return hubservice.New(readings, settings, alert.NewDispatcher(notifiers...))
}

func initAppDB(cfg config.PostgresConfig) database.DB {
	wrappedDB, err := database.NewPostgresDB(cfg)
	if err != nil {
		nuts.L.Fatalf("[Server] Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := wrappedDB.Ping(ctx); err != nil {
		nuts.L.Fatalf("[Server] Failed to ping database: %v", err)
	}
	return wrappedDB
}
