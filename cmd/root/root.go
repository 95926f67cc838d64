// Package root contains the root command for the application
package root

import (
	"fmt"
	"time"

	"fjacquet/sales-analytics/internal/config"
	"fjacquet/sales-analytics/internal/container"
	"fjacquet/sales-analytics/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags are the persistent flags shared by every command. A flag only
// overrides the configuration when it was set explicitly.
type CommonFlags struct {
	ConfigFile string
	Input      string
	Enriched   string
	Report     string
	Delimiter  string
	TopN       int
	Seed       int64
	Delay      time.Duration
	Workers    int
	Catalog    string
	LogLevel   string
}

var (
	// Log is the shared logger instance for commands
	Log = config.ConfigureLogging()

	// SharedFlags holds the parsed persistent flags
	SharedFlags = CommonFlags{}

	// Cmd is the root command. Without a subcommand it behaves like "run";
	// main wires RunE to avoid an import cycle.
	Cmd = &cobra.Command{
		Use:   "sales-analytics",
		Short: "Clean, enrich and report on a sales ledger.",
		Long: `sales-analytics reads a delimited sales ledger, rejects malformed rows,
enriches every valid transaction with region, category and product metadata,
and writes an enriched ledger plus a plain text analytics report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	// Assigned here rather than in the literal: flagChanged refers to Cmd,
	// which would otherwise be an initialization cycle.
	Cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if flagChanged(cmd, "log-level") {
			Log = logging.NewLogrusAdapter(SharedFlags.LogLevel, config.GetEnv("LOG_FORMAT", "text"))
		}
	}

	flags := Cmd.PersistentFlags()
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in ., .sales-analytics or $HOME/.sales-analytics)")
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input sales ledger")
	flags.StringVar(&SharedFlags.Enriched, "enriched", "", "Enriched ledger output file")
	flags.StringVarP(&SharedFlags.Report, "report", "o", "", "Report output file")
	flags.StringVar(&SharedFlags.Delimiter, "delimiter", "", "Field delimiter (single character)")
	flags.IntVar(&SharedFlags.TopN, "top", 0, "Number of products in the top products section")
	flags.Int64Var(&SharedFlags.Seed, "seed", 0, "Enrichment seed")
	flags.DurationVar(&SharedFlags.Delay, "delay", 0, "Simulated product lookup latency per record")
	flags.IntVar(&SharedFlags.Workers, "workers", 0, "Concurrent enrichment workers")
	flags.StringVar(&SharedFlags.Catalog, "catalog", "", "Product catalogue YAML file (default: built-in)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

// LoadConfig loads the configuration and applies explicitly set flags on top.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return nil, err
	}

	if flagChanged(cmd, "input") {
		cfg.Input.Path = SharedFlags.Input
	}
	if flagChanged(cmd, "enriched") {
		cfg.Output.EnrichedPath = SharedFlags.Enriched
	}
	if flagChanged(cmd, "report") {
		cfg.Output.ReportPath = SharedFlags.Report
	}
	if flagChanged(cmd, "delimiter") {
		cfg.Input.Delimiter = SharedFlags.Delimiter
	}
	if flagChanged(cmd, "top") {
		cfg.Report.TopN = SharedFlags.TopN
	}
	if flagChanged(cmd, "seed") {
		cfg.Enrichment.Seed = SharedFlags.Seed
	}
	if flagChanged(cmd, "delay") {
		cfg.Enrichment.Delay = SharedFlags.Delay
	}
	if flagChanged(cmd, "workers") {
		cfg.Enrichment.Workers = SharedFlags.Workers
	}
	if flagChanged(cmd, "catalog") {
		cfg.Enrichment.CatalogFile = SharedFlags.Catalog
	}
	if flagChanged(cmd, "log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewContainer loads the configuration and wires the application.
func NewContainer(cmd *cobra.Command) (*container.Container, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	Log = config.ConfigureLoggingFromConfig(cfg)

	c, err := container.NewContainerWithLogger(cfg, Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return c, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Changed
	}
	if f := Cmd.PersistentFlags().Lookup(name); f != nil {
		return f.Changed
	}
	return false
}
