package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "MIGRATOR"

var (
	logLevel         string
	logColorDisabled bool
	configFile       string

	rootCmd = &cobra.Command{
		Use:   "hdf5-migrator",
		Short: "Migrate directory trees of measurement files into hierarchical containers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initLog()
			return initConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "Log level")
	rootCmd.PersistentFlags().BoolVar(&logColorDisabled, "log-color-disabled", false, "Force to disable colorful logs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (yaml, toml or json) providing flag defaults")
}

func initLog() {
	formatter := logrus.TextFormatter{
		FullTimestamp: true,
	}

	if logColorDisabled {
		formatter.DisableColors = true
	} else {
		formatter.ForceColors = true
	}

	logrus.SetFormatter(&formatter)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).WithField("level", logLevel).Fatal("Failed to parse log level")
	}

	logrus.SetLevel(level)
}

// initConfig binds the flags of the running command, so that a flag not set on the
// command line falls back to MIGRATOR_<FLAG> and then to the config file.
func initConfig(cmd *cobra.Command) error {
	viper.Reset()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errors.WithMessagef(err, "failed to read config file %s", configFile)
		}
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("Config file loaded")
	}

	return viper.BindPFlags(cmd.Flags())
}

// Execute is the command line entrypoint.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
