package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCriteriaCommand(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int("depth", 2, "")
	bindCriteriaFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))

	t.Cleanup(func() {
		configFile = ""
		viper.Reset()
	})

	return cmd
}

func TestNameRuleFromFlags(t *testing.T) {
	cmd := newCriteriaCommand(t, "--not-ends", ".txt,.md", "--operator", "and")
	require.NoError(t, initConfig(cmd))

	predicate, err := nameRule()
	require.NoError(t, err)
	require.NotNil(t, predicate)

	assert.True(t, predicate(filepath.Join("data", "x.dat")))
	assert.False(t, predicate(filepath.Join("data", "notes.txt")))
}

func TestNameRuleEmpty(t *testing.T) {
	cmd := newCriteriaCommand(t)
	require.NoError(t, initConfig(cmd))

	predicate, err := nameRule()
	require.NoError(t, err)
	assert.Nil(t, predicate)
}

func TestNameRuleBadGlob(t *testing.T) {
	cmd := newCriteriaCommand(t, "--glob", "[a-")
	require.NoError(t, initConfig(cmd))

	_, err := nameRule()
	assert.Error(t, err)
}

func TestConfigFileAndEnvFallback(t *testing.T) {
	configFile = filepath.Join(t.TempDir(), "migrator.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("depth: 4\nends:\n  - .dat\n"), 0644))
	t.Setenv("MIGRATOR_OPERATOR", "or")

	cmd := newCriteriaCommand(t)
	require.NoError(t, initConfig(cmd))

	assert.Equal(t, 4, viper.GetInt("depth"))
	assert.Equal(t, []string{".dat"}, viper.GetStringSlice("ends"))
	assert.Equal(t, "or", viper.GetString("operator"))

	cmd = newCriteriaCommand(t, "--depth", "1")
	configFile = filepath.Join(t.TempDir(), "migrator.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("depth: 4\n"), 0644))
	require.NoError(t, initConfig(cmd))
	assert.Equal(t, 1, viper.GetInt("depth"))
}
