package cmd

import (
	"github.com/David-HERS/HDF5-Data-Migrator/criteria"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func bindCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("in", nil, "Keep names containing any of the substrings")
	cmd.Flags().StringSlice("not-in", nil, "Drop names containing the substrings")
	cmd.Flags().StringSlice("starts", nil, "Keep names starting with the prefixes")
	cmd.Flags().StringSlice("not-starts", nil, "Drop names starting with the prefixes")
	cmd.Flags().StringSlice("ends", nil, "Keep names ending with the suffixes")
	cmd.Flags().StringSlice("not-ends", nil, "Drop names ending with the suffixes")
	cmd.Flags().StringSlice("glob", nil, "Keep names matching the glob patterns")
	cmd.Flags().StringSlice("not-glob", nil, "Drop names matching the glob patterns")
	cmd.Flags().String("operator", string(criteria.And), "How entries of a list are combined, and or or")
}

// nameRule reads the criteria flags. Returns nil when no criteria is given.
func nameRule() (func(path string) bool, error) {
	rule := criteria.NameRule{
		InPath:    viper.GetStringSlice("in"),
		NotInPath: viper.GetStringSlice("not-in"),
		Starts:    viper.GetStringSlice("starts"),
		NotStarts: viper.GetStringSlice("not-starts"),
		Ends:      viper.GetStringSlice("ends"),
		NotEnds:   viper.GetStringSlice("not-ends"),
		Globs:     viper.GetStringSlice("glob"),
		NotGlobs:  viper.GetStringSlice("not-glob"),
		Operator:  criteria.Operator(viper.GetString("operator")),
	}

	if rule.Empty() {
		return nil, nil
	}

	if err := rule.ValidateGlobs(); err != nil {
		return nil, err
	}

	return criteria.ByName(rule), nil
}
