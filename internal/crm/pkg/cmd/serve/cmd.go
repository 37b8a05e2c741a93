// Package serve ...
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/boothworks/crm-manager/internal/crm/pkg/config"
	"github.com/boothworks/crm-manager/internal/crm/pkg/services"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workers/crmmgrs"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/internal/crm/routes"
	"github.com/boothworks/crm-manager/pkg/auth"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/server"
	"github.com/boothworks/crm-manager/pkg/workers"
)

// NewServeCommand ...
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the CRM manager",
		Long:  "Serve the CRM manager API, metrics and health check endpoints and run the background workers.",
		Run:   runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.GetConfig()
	if err != nil {
		glog.Fatalf("Unable to load configuration: %s", err)
	}

	appDBConfig := cfg.AppDatabase.GetDbConfig()
	if err := appDBConfig.ReadFiles(); err != nil {
		glog.Fatalf("Unable to read app database secrets: %s", err)
	}
	appFactory, appCleanup := db.NewConnectionFactory(appDBConfig)
	defer appCleanup()

	dataDBConfig := cfg.DataDatabase.GetDbConfig()
	if err := dataDBConfig.ReadFiles(); err != nil {
		glog.Fatalf("Unable to read data database secrets: %s", err)
	}
	registry, err := db.LoadTenantRegistry(cfg.TenantRegistryFile)
	if err != nil {
		glog.Fatalf("Unable to load tenant registry: %s", err)
	}
	router := db.NewRouter(registry, dataDBConfig)
	defer router.Close()

	engine := workflows.NewEngine(router, cfg.WorkflowCacheTTL)

	authMiddleware := auth.NewAuthenticationMiddleware(cfg.AuthTokenSecret)
	routeLoader := routes.NewRouteLoader(
		appFactory,
		authMiddleware,
		services.NewContactService(router, engine),
		services.NewAccountService(router, engine),
		services.NewLeadService(router, engine),
		services.NewOpportunityService(router, engine),
		services.NewEventService(router, engine),
		services.NewInventoryService(router),
		services.NewBillingService(router, engine),
		services.NewTicketService(router, engine),
		services.NewTaskService(router),
		services.NewWorkflowService(router, engine),
		services.NewTenantService(appFactory),
	)

	serverConfig := server.NewServerConfig()
	serverConfig.BindAddress = cfg.APIServerBindAddress
	serverConfig.EnableHTTPS = cfg.EnableHTTPS
	serverConfig.HTTPSCertFile = cfg.HTTPSCertFile
	serverConfig.HTTPSKeyFile = cfg.HTTPSKeyFile

	apiServer, err := server.NewAPIServer(serverConfig, routeLoader)
	if err != nil {
		glog.Fatalf("Unable to build API server: %s", err)
	}

	metricsConfig := server.GetMetricsConfig()
	metricsConfig.BindAddress = cfg.MetricsBindAddress
	metricsServer := server.NewMetricsServer(metricsConfig, serverConfig)

	healthCheckConfig := server.GetHealthCheckConfig()
	healthCheckConfig.BindAddress = cfg.HealthCheckBindAddress
	healthCheckServer := server.NewHealthCheckServer(healthCheckConfig, serverConfig, appFactory)

	workers.DefaultRepeatInterval = cfg.WorkerRepeatInterval
	workerList := []workers.Worker{
		crmmgrs.NewOverdueInvoicesManager(router, engine),
		crmmgrs.NewEventRemindersManager(router),
		crmmgrs.NewExecutionRetentionManager(router, cfg.ExecutionRetention),
	}

	apiServer.Start()
	metricsServer.Start()
	healthCheckServer.Start()
	for _, worker := range workerList {
		worker.Start()
	}
	glog.Infof("CRM manager started, API at %s", cfg.APIServerBindAddress)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	glog.Infof("Caught %s signal, shutting down", sig)

	for _, worker := range workerList {
		worker.Stop()
	}
	apiServer.Stop()
	metricsServer.Stop()
	healthCheckServer.Stop()
}
