package cmd

import (
	"os"

	"github.com/David-HERS/HDF5-Data-Migrator/container"
	"github.com/David-HERS/HDF5-Data-Migrator/criteria"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var keysCmd = &cobra.Command{
	Use:   "keys <container>",
	Short: "List the object names of a container",
	Args:  cobra.ExactArgs(1),
	Run:   listKeys,
}

func init() {
	keysCmd.Flags().Int("recursion", container.DefaultMaxRecursion, "Maximum group nesting to list")
	keysCmd.Flags().Bool("datasets", false, "List datasets only")
	bindCriteriaFlags(keysCmd)
	bindFormatFlag(keysCmd)

	rootCmd.AddCommand(keysCmd)
}

func listKeys(_ *cobra.Command, args []string) {
	predicate, err := nameRule()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid criteria")
	}

	file, err := container.Open(args[0])
	if err != nil {
		logrus.WithError(err).Fatal("Failed to open container")
	}
	defer file.Close()

	opt := container.KeyOption{
		DataCriteria: predicate,
		MaxRecursion: viper.GetInt("recursion"),
	}
	if viper.GetBool("datasets") {
		opt.ObjectCriteria = criteria.IsDataset
	}

	keys, err := container.Keys(file, opt)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to list keys")
	}

	if err := writeOutput(os.Stdout, viper.GetString("format"), keys, keys); err != nil {
		logrus.WithError(err).Fatal("Failed to print keys")
	}
}
