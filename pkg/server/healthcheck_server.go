package server

import (
	"context"
	"fmt"
	"net/http"

	health "github.com/docker/go-healthcheck"
	"github.com/golang/glog"
	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
)

var (
	updater = health.NewStatusUpdater()
)

// HealthCheckServer serves the liveness and readiness endpoints.
type HealthCheckServer struct {
	httpServer          *http.Server
	serverConfig        *ServerConfig
	healthCheckConfig   *HealthCheckConfig
	dbConnectionFactory *db.ConnectionFactory
}

// NewHealthCheckServer ...
func NewHealthCheckServer(healthCheckConfig *HealthCheckConfig, serverConfig *ServerConfig, dbConnectionFactory *db.ConnectionFactory) *HealthCheckServer {
	router := mux.NewRouter()
	health.DefaultRegistry = health.NewRegistry()
	health.Register("maintenance_status", updater)

	srv := &http.Server{
		Handler: router,
		Addr:    healthCheckConfig.BindAddress,
	}

	healthServer := &HealthCheckServer{
		httpServer:          srv,
		serverConfig:        serverConfig,
		healthCheckConfig:   healthCheckConfig,
		dbConnectionFactory: dbConnectionFactory,
	}

	router.HandleFunc("/healthcheck", health.StatusHandler).Methods(http.MethodGet)
	router.HandleFunc("/healthcheck/down", downHandler).Methods(http.MethodPost)
	router.HandleFunc("/healthcheck/up", upHandler).Methods(http.MethodPost)
	router.HandleFunc("/healthcheck/ready", healthServer.ready).Methods(http.MethodGet)

	return healthServer
}

// Start ...
func (s HealthCheckServer) Start() {
	go s.Run()
}

// Run ...
func (s HealthCheckServer) Run() {
	var err error
	if s.healthCheckConfig.EnableHTTPS {
		if s.serverConfig.HTTPSCertFile == "" || s.serverConfig.HTTPSKeyFile == "" {
			glog.Fatal("Can't start https health check server: unspecified required --https-cert-file, --https-key-file")
		}

		glog.Infof("Serving HealthCheck with TLS at %s", s.healthCheckConfig.BindAddress)
		err = s.httpServer.ListenAndServeTLS(s.serverConfig.HTTPSCertFile, s.serverConfig.HTTPSKeyFile)
	} else {
		glog.Infof("Serving HealthCheck without TLS at %s", s.healthCheckConfig.BindAddress)
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		glog.Fatalf("HealthCheck server terminated with errors: %v", err)
	}
	glog.Infof("HealthCheck server terminated")
}

// Stop ...
func (s HealthCheckServer) Stop() {
	err := s.httpServer.Shutdown(context.Background())
	if err != nil {
		glog.Warningf("Unable to stop health check server: %s", err)
	}
}

func upHandler(w http.ResponseWriter, r *http.Request) {
	updater.Update(nil)
}

func downHandler(w http.ResponseWriter, r *http.Request) {
	updater.Update(fmt.Errorf("maintenance mode"))
}

// ready checks for the service dependencies such as DB connection.
// A "ready" service means it is prepared to serve traffic. It is used by the readinessProbe.
func (s HealthCheckServer) ready(w http.ResponseWriter, r *http.Request) {
	err := s.dbConnectionFactory.CheckConnection()
	if err != nil {
		api.SendServiceUnavailable(w, r, "DB connection failed")
	}
}
