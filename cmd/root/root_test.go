package root_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/sales-analytics/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "sales-analytics", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "sales ledger")
	assert.NotNil(t, root.Cmd.PersistentPreRun)
	assert.True(t, root.Cmd.SilenceUsage)
}

func TestRootCommand_Flags(t *testing.T) {
	flags := root.Cmd.PersistentFlags()

	input := flags.Lookup("input")
	require.NotNil(t, input)
	assert.Equal(t, "i", input.Shorthand)

	report := flags.Lookup("report")
	require.NotNil(t, report)
	assert.Equal(t, "o", report.Shorthand)

	for _, name := range []string{"config", "enriched", "delimiter", "top", "seed", "delay", "workers", "catalog", "log-level"} {
		assert.NotNil(t, flags.Lookup(name), name)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	configFile := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("report:\n  top_n: 7\n"), 0600))

	original := root.SharedFlags
	t.Cleanup(func() {
		root.SharedFlags = original
		for _, name := range []string{"config", "workers", "delay", "input"} {
			root.Cmd.PersistentFlags().Lookup(name).Changed = false
		}
	})

	cmd := &cobra.Command{Use: "scratch"}
	root.Cmd.AddCommand(cmd)
	t.Cleanup(func() { root.Cmd.RemoveCommand(cmd) })

	flags := root.Cmd.PersistentFlags()
	require.NoError(t, flags.Set("config", configFile))
	require.NoError(t, flags.Set("workers", "3"))
	require.NoError(t, flags.Set("delay", "15ms"))
	require.NoError(t, flags.Set("input", "ledger.txt"))

	cfg, err := root.LoadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Report.TopN)
	assert.Equal(t, 3, cfg.Enrichment.Workers)
	assert.Equal(t, 15*time.Millisecond, cfg.Enrichment.Delay)
	assert.Equal(t, "ledger.txt", cfg.Input.Path)
	assert.Equal(t, "|", cfg.Input.Delimiter)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	original := root.SharedFlags
	t.Cleanup(func() {
		root.SharedFlags = original
		root.Cmd.PersistentFlags().Lookup("top").Changed = false
	})

	require.NoError(t, root.Cmd.PersistentFlags().Set("top", "0"))
	_, err := root.LoadConfig(root.Cmd)
	assert.Error(t, err)
}
