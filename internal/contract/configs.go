package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/uli/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 0 // no limit
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	Identity string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Window     schema.TrendWindow
	Principles []schema.Principle

	Search      string
	Tag         string
	Since       time.Time
	ResultLimit int

	ShuffleTies bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Identity       string `mapstructure:"identity"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Precision      int    `mapstructure:"precision"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`

	// --- Fields from trendCmd.Flags() ---
	Window     string `mapstructure:"window"`
	Principles string `mapstructure:"principles"`

	// --- Fields from historyCmd.Flags() ---
	Search string `mapstructure:"search"`
	Tag    string `mapstructure:"tag"`
	Since  string `mapstructure:"since"`
	Limit  int    `mapstructure:"limit"`

	// --- Fields from recommendCmd.Flags() ---
	ShuffleTies bool `mapstructure:"shuffle-ties"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Principles != nil {
		clone.Principles = make([]schema.Principle, len(c.Principles))
		copy(clone.Principles, c.Principles)
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processTrendInputs(cfg, input); err != nil {
		return err
	}
	if err := processHistoryInputs(cfg, input, time.Now()); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.MemoryBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates identity and output settings.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	cfg.Identity = strings.TrimSpace(input.Identity)
	if cfg.Identity == "" {
		cfg.Identity = schema.DefaultIdentity
	}
	if strings.ContainsAny(cfg.Identity, " \t\n") {
		return fmt.Errorf("identity must not contain whitespace (received %q)", cfg.Identity)
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, svg, parquet", input.Output)
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// validateBackendConfig validates the record store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, memory", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// processTrendInputs handles the trend window and principle selection.
func processTrendInputs(cfg *Config, input *ConfigRawInput) error {
	window := strings.ToLower(strings.TrimSpace(input.Window))
	if window == "" {
		window = string(schema.WindowAll)
	}
	cfg.Window = schema.TrendWindow(window)
	if _, ok := schema.ValidTrendWindows[cfg.Window]; !ok {
		return fmt.Errorf("invalid window '%s'. must be 7d, 30d, all", input.Window)
	}

	principles, err := schema.ParsePrinciples(input.Principles)
	if err != nil {
		return fmt.Errorf("invalid --principles value: %w", err)
	}
	cfg.Principles = principles
	return nil
}

// processHistoryInputs handles search filters, the result limit and the since bound.
func processHistoryInputs(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.Search = strings.TrimSpace(input.Search)
	cfg.Tag = strings.TrimSpace(input.Tag)
	cfg.ShuffleTies = input.ShuffleTies

	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 and %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Since = time.Time{}
	if input.Since != "" {
		since, err := ParseSince(input.Since, now)
		if err != nil {
			return err
		}
		cfg.Since = since
	}
	return nil
}
