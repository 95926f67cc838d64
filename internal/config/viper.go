// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"fjacquet/sales-analytics/internal/ledgererror"
	"fjacquet/sales-analytics/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SALES_REPORT_TOP_N.
const EnvPrefix = "SALES"

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	Input      InputConfig      `mapstructure:"input" yaml:"input"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Report     ReportConfig     `mapstructure:"report" yaml:"report"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment" yaml:"enrichment"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type InputConfig struct {
	Path        string   `mapstructure:"path" yaml:"path"`
	Delimiter   string   `mapstructure:"delimiter" yaml:"delimiter"`
	DateLayouts []string `mapstructure:"date_layouts" yaml:"date_layouts"`
	IDPrefix    string   `mapstructure:"id_prefix" yaml:"id_prefix"`
}

type OutputConfig struct {
	EnrichedPath string `mapstructure:"enriched_path" yaml:"enriched_path"`
	ReportPath   string `mapstructure:"report_path" yaml:"report_path"`
}

type ReportConfig struct {
	TopN                int `mapstructure:"top_n" yaml:"top_n"`
	MaxRejectionsListed int `mapstructure:"max_rejections_listed" yaml:"max_rejections_listed"`
}

// EnrichmentConfig drives the mock product lookup. Delay, Jitter and
// RatePerSecond only shape simulated latency, never the enriched values.
type EnrichmentConfig struct {
	Seed          int64         `mapstructure:"seed" yaml:"seed"`
	Delay         time.Duration `mapstructure:"delay" yaml:"delay"`
	Jitter        time.Duration `mapstructure:"jitter" yaml:"jitter"`
	RatePerSecond float64       `mapstructure:"rate_per_second" yaml:"rate_per_second"`
	Workers       int           `mapstructure:"workers" yaml:"workers"`
	CatalogFile   string        `mapstructure:"catalog_file" yaml:"catalog_file"`
}

// DelimiterRune returns the configured input delimiter.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	return r
}

// InitializeConfig loads configuration from the default locations.
func InitializeConfig() (*Config, error) {
	return LoadConfig("")
}

// LoadConfig initializes Viper configuration with hierarchical loading:
// defaults, then config file, then SALES_* environment variables. A non-empty
// configFile replaces the search path and must exist.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.sales-analytics")
		v.AddConfigPath(".sales-analytics")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("input.path", "data/sales_data.txt")
	v.SetDefault("input.delimiter", "|")
	v.SetDefault("input.date_layouts", []string{"2006-01-02"})
	v.SetDefault("input.id_prefix", "")

	v.SetDefault("output.enriched_path", "output/enriched_sales_data.txt")
	v.SetDefault("output.report_path", "output/sales_report.txt")

	v.SetDefault("report.top_n", 5)
	v.SetDefault("report.max_rejections_listed", 10)

	v.SetDefault("enrichment.seed", 42)
	v.SetDefault("enrichment.delay", "0s")
	v.SetDefault("enrichment.jitter", "0s")
	v.SetDefault("enrichment.rate_per_second", 0.0)
	v.SetDefault("enrichment.workers", 1)
	v.SetDefault("enrichment.catalog_file", "")
}

// Validate checks a configuration that was assembled outside LoadConfig,
// for instance after command-line overrides.
func Validate(config *Config) error {
	return validateConfig(config)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return &ledgererror.ConfigError{Key: "log.level", Reason: fmt.Sprintf("invalid log level: %s", config.Log.Level)}
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return &ledgererror.ConfigError{Key: "log.format", Reason: fmt.Sprintf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)}
	}

	if utf8.RuneCountInString(config.Input.Delimiter) != 1 {
		return &ledgererror.ConfigError{Key: "input.delimiter", Reason: fmt.Sprintf("delimiter must be a single character, got: %q", config.Input.Delimiter)}
	}
	if d := config.DelimiterRune(); d == '\r' || d == '\n' || d == '"' {
		return &ledgererror.ConfigError{Key: "input.delimiter", Reason: fmt.Sprintf("delimiter %q is not allowed", d)}
	}

	if config.Input.Path == "" {
		return &ledgererror.ConfigError{Key: "input.path", Reason: "input path must not be empty"}
	}
	if config.Output.EnrichedPath == "" || config.Output.ReportPath == "" {
		return &ledgererror.ConfigError{Key: "output", Reason: "output paths must not be empty"}
	}

	if config.Report.TopN < 1 {
		return &ledgererror.ConfigError{Key: "report.top_n", Reason: fmt.Sprintf("must be at least 1, got: %d", config.Report.TopN)}
	}
	if config.Report.MaxRejectionsListed < 0 {
		return &ledgererror.ConfigError{Key: "report.max_rejections_listed", Reason: fmt.Sprintf("must not be negative, got: %d", config.Report.MaxRejectionsListed)}
	}

	if config.Enrichment.Workers < 1 {
		return &ledgererror.ConfigError{Key: "enrichment.workers", Reason: fmt.Sprintf("must be at least 1, got: %d", config.Enrichment.Workers)}
	}
	if config.Enrichment.Delay < 0 || config.Enrichment.Jitter < 0 {
		return &ledgererror.ConfigError{Key: "enrichment.delay", Reason: "delays must not be negative"}
	}
	if config.Enrichment.RatePerSecond < 0 {
		return &ledgererror.ConfigError{Key: "enrichment.rate_per_second", Reason: fmt.Sprintf("must not be negative, got: %g", config.Enrichment.RatePerSecond)}
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
