package server

import (
	"context"
	"net/http"

	"github.com/golang/glog"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/metrics"
)

// MetricsServer serves the Prometheus scrape endpoint.
type MetricsServer struct {
	httpServer    *http.Server
	serverConfig  *ServerConfig
	metricsConfig *MetricsConfig
}

// NewMetricsServer ...
func NewMetricsServer(metricsConfig *MetricsConfig, serverConfig *ServerConfig) *MetricsServer {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	metrics.DefaultInstance().Register(registry)

	mainRouter := mux.NewRouter()
	mainRouter.NotFoundHandler = http.HandlerFunc(api.SendNotFound)
	mainRouter.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s := &MetricsServer{
		serverConfig:  serverConfig,
		metricsConfig: metricsConfig,
	}
	s.httpServer = &http.Server{
		Addr:    metricsConfig.BindAddress,
		Handler: mainRouter,
	}
	return s
}

// Start ...
func (s MetricsServer) Start() {
	go s.run()
}

func (s MetricsServer) run() {
	var err error
	if s.metricsConfig.EnableHTTPS {
		if s.serverConfig.HTTPSCertFile == "" || s.serverConfig.HTTPSKeyFile == "" {
			glog.Fatal("Can't start https metrics server: unspecified required --https-cert-file, --https-key-file")
		}

		glog.Infof("Serving Metrics with TLS at %s", s.metricsConfig.BindAddress)
		err = s.httpServer.ListenAndServeTLS(s.serverConfig.HTTPSCertFile, s.serverConfig.HTTPSKeyFile)
	} else {
		glog.Infof("Serving Metrics without TLS at %s", s.metricsConfig.BindAddress)
		err = s.httpServer.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		glog.Fatalf("Metrics server terminated with errors: %v", err)
	}
	glog.Infof("Metrics server terminated")
}

// Stop ...
func (s MetricsServer) Stop() {
	err := s.httpServer.Shutdown(context.Background())
	if err != nil {
		glog.Warningf("Unable to stop metrics server: %s", err)
	}
}
