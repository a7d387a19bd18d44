package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/David-HERS/HDF5-Data-Migrator/common"
	"github.com/David-HERS/HDF5-Data-Migrator/gateway"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start gateway service to preview directories and list container keys",
	Run:   startGateway,
}

func init() {
	defaults := gateway.DefaultConfig()
	gatewayCmd.Flags().String("endpoint", defaults.Endpoint, "Listen address")
	gatewayCmd.Flags().String("repo", defaults.Repo, "Base directory of relative request paths")
	gatewayCmd.Flags().StringSlice("origins", nil, "Allowed CORS origins, all when empty")

	rootCmd.AddCommand(gatewayCmd)
}

func startGateway(*cobra.Command, []string) {
	var config gateway.Config
	if err := viper.Unmarshal(&config); err != nil {
		logrus.WithError(err).Fatal("Failed to load gateway config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := gateway.Serve(ctx, config, common.StandardLogOption()); err != nil {
		logrus.WithError(err).Fatal("Failed to serve gateway")
	}
}
