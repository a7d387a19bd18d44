package cmd

import (
	"github.com/David-HERS/HDF5-Data-Migrator/common"
	"github.com/David-HERS/HDF5-Data-Migrator/migrate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var buildCmd = &cobra.Command{
	Use:   "build <dir>",
	Short: "Migrate a directory tree into a container",
	Args:  cobra.ExactArgs(1),
	Run:   build,
}

func init() {
	buildCmd.Flags().Int("depth", migrate.DefaultMaxDepth, "Maximum depth to migrate")
	buildCmd.Flags().String("name", "", "Container file, defaults to the directory name with .h5c extension")
	bindCriteriaFlags(buildCmd)

	rootCmd.AddCommand(buildCmd)
}

func build(_ *cobra.Command, args []string) {
	predicate, err := nameRule()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid criteria")
	}

	builder := migrate.NewBuilder(nil, common.StandardLogOption())

	node, err := builder.Build(args[0], migrate.BuildOption{
		Predicate: predicate,
		MaxDepth:  viper.GetInt("depth"),
		Name:      viper.GetString("name"),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to build container")
	}

	logrus.WithField("container", node.Container().Path()).Info("Container built")
}
