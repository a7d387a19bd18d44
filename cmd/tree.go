package cmd

import (
	"os"

	"github.com/David-HERS/HDF5-Data-Migrator/tree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type nodeRecord struct {
	Line  string `json:"line" yaml:"line"`
	Path  string `json:"path" yaml:"path"`
	Depth int    `json:"depth" yaml:"depth"`
	Dir   bool   `json:"dir" yaml:"dir"`
	Last  bool   `json:"last" yaml:"last"`
}

var treeCmd = &cobra.Command{
	Use:   "tree <dir>",
	Short: "Preview the directory tree that would be migrated",
	Args:  cobra.ExactArgs(1),
	Run:   printTree,
}

func init() {
	treeCmd.Flags().Int("depth", tree.DefaultMaxDepth, "Maximum depth to expand")
	bindCriteriaFlags(treeCmd)
	bindFormatFlag(treeCmd)

	rootCmd.AddCommand(treeCmd)
}

func printTree(_ *cobra.Command, args []string) {
	predicate, err := nameRule()
	if err != nil {
		logrus.WithError(err).Fatal("Invalid criteria")
	}

	walker, err := tree.Walk(args[0], tree.WalkOption{
		Predicate: predicate,
		MaxDepth:  viper.GetInt("depth"),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to walk directory")
	}

	format := viper.GetString("format")
	if format == formatText {
		if err := walker.Fprint(os.Stdout); err != nil {
			logrus.WithError(err).Fatal("Failed to print tree")
		}
		return
	}

	nodes, err := walker.Collect()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to walk directory")
	}

	records := make([]nodeRecord, len(nodes))
	for i, node := range nodes {
		records[i] = nodeRecord{
			Line:  node.Render(),
			Path:  node.Path(),
			Depth: node.Depth(),
			Dir:   node.IsDir(),
			Last:  node.IsLast(),
		}
	}

	if err := writeOutput(os.Stdout, format, nil, records); err != nil {
		logrus.WithError(err).Fatal("Failed to print tree")
	}
}
