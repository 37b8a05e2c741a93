// main package for the crm-manager service
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/boothworks/crm-manager/internal/crm/pkg/cmd/migrate"
	"github.com/boothworks/crm-manager/internal/crm/pkg/cmd/serve"
)

func main() {
	defer glog.Flush()
	rootCmd := &cobra.Command{
		Use:  "crm-manager",
		Long: "crm-manager is the multi-tenant CRM and event operations service",
	}

	rootCmd.AddCommand(serve.NewServeCommand())
	rootCmd.AddCommand(migrate.NewMigrateCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	if err := flag.Set("logtostderr", "true"); err != nil {
		glog.Infof("Unable to set logtostderr to true")
	}
}
