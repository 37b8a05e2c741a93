// Package server ...
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/golang/glog"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/logger"
	"github.com/boothworks/crm-manager/pkg/server/logging"
)

// RouteLoader registers a set of routes on the main router.
type RouteLoader interface {
	AddRoutes(mainRouter *mux.Router) error
}

// APIServer serves the public REST API.
type APIServer struct {
	httpServer   *http.Server
	serverConfig *ServerConfig
}

// NewAPIServer builds the API server with all top-level middlewares applied.
// Authentication is mounted per subtree by the route loaders, the discovery
// and metadata routes stay open.
func NewAPIServer(serverConfig *ServerConfig, routeLoaders ...RouteLoader) (*APIServer, error) {
	s := &APIServer{
		httpServer:   nil,
		serverConfig: serverConfig,
	}

	// mainRouter is top level "/"
	mainRouter := mux.NewRouter()
	mainRouter.NotFoundHandler = http.HandlerFunc(api.SendNotFound)
	mainRouter.MethodNotAllowedHandler = http.HandlerFunc(api.SendMethodNotAllowed)

	// Operation ID middleware sets a relatively unique operation ID in the context of each request for debugging purposes
	mainRouter.Use(logger.OperationIDMiddleware)

	// Request logging middleware logs pertinent information about the request and response
	mainRouter.Use(logging.RequestLoggingMiddleware)

	for _, loader := range routeLoaders {
		if err := loader.AddRoutes(mainRouter); err != nil {
			return nil, err
		}
	}

	// referring to the router as type http.Handler allows us to add middleware via more handlers
	var mainHandler http.Handler = mainRouter

	mainHandler = gorillahandlers.CORS(
		gorillahandlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		gorillahandlers.AllowedHeaders([]string{
			"Authorization",
			"Content-Type",
		}),
		gorillahandlers.MaxAge(int((10 * time.Minute).Seconds())),
	)(mainHandler)

	mainHandler = gorillahandlers.CompressHandler(mainHandler)

	s.httpServer = &http.Server{
		Addr:    serverConfig.BindAddress,
		Handler: mainHandler,
	}

	return s, nil
}

// Serve starts the blocking call to Serve.
// Useful for breaking up ListenAndServe (Start) when you require the server to be listening before continuing
func (s *APIServer) Serve(listener net.Listener) {
	var err error
	if s.serverConfig.EnableHTTPS {
		if s.serverConfig.HTTPSCertFile == "" || s.serverConfig.HTTPSKeyFile == "" {
			glog.Fatal("Can't start https server: unspecified required --https-cert-file, --https-key-file")
		}

		glog.Infof("Serving with TLS at %s", s.serverConfig.BindAddress)
		err = s.httpServer.ServeTLS(listener, s.serverConfig.HTTPSCertFile, s.serverConfig.HTTPSKeyFile)
	} else {
		glog.Infof("Serving without TLS at %s", s.serverConfig.BindAddress)
		err = s.httpServer.Serve(listener)
	}

	if err != nil && err != http.ErrServerClosed {
		glog.Fatalf("Web server terminated with errors: %v", err)
	}
	glog.Info("Web server terminated")
}

// listen only starts the listener, not the server.
func (s *APIServer) listen() net.Listener {
	l, err := net.Listen("tcp", s.serverConfig.BindAddress)
	if err != nil {
		glog.Fatalf("Unable to start API server: %s", err)
	}
	return l
}

// Start starts listening on the configured port and starts the server.
func (s *APIServer) Start() {
	listener := s.listen() // bind address in the same goroutine to avoid concurrency issues
	go s.Serve(listener)
}

// Stop stops the service
func (s *APIServer) Stop() {
	err := s.httpServer.Shutdown(context.Background())
	if err != nil {
		glog.Warningf("Unable to stop API server: %s", err)
	}
}
