package contract

import (
	"fmt"
	"maps"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/flowspan/flowspan/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1

	// DefaultAtRiskWeeks is the display threshold for flagging long cycles,
	// in weeks. Thresholding is a presentation concern; the engine itself
	// never consumes it.
	DefaultAtRiskWeeks = 4.0
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for an analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	HistoryPath string
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)

	// Now is the computation time substituted for open boundaries.
	// Overridable for reproducible runs; defaults to wall clock.
	Now time.Time

	Taxonomy schema.StatusTaxonomy

	Phase       schema.Phase
	AtRiskWeeks float64

	StoreBackend schema.DatabaseBackend
	StoreConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	HistoryPathStr string

	Limit        int    `mapstructure:"limit"`
	Workers      int    `mapstructure:"workers"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Detail       bool   `mapstructure:"detail"`
	Width        int    `mapstructure:"width"`
	Now          string `mapstructure:"now"`
	Phase        string `mapstructure:"phase"`
	AtRiskWeeks  float64 `mapstructure:"at-risk-weeks"`
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`

	// --- Status taxonomy from config file ---
	Statuses schema.StatusTaxonomy `mapstructure:"statuses"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Taxonomy.DiscoveryStatuses = slices.Clone(c.Taxonomy.DiscoveryStatuses)
	clone.Taxonomy.CompletionStatuses = slices.Clone(c.Taxonomy.CompletionStatuses)
	clone.Taxonomy.HoldStatuses = slices.Clone(c.Taxonomy.HoldStatuses)
	return &clone
}

// ConfigParams returns the run parameters recorded alongside stored results.
func (c *Config) ConfigParams() map[string]any {
	params := map[string]any{
		"history_path": c.HistoryPath,
		"workers":      c.Workers,
		"result_limit": c.ResultLimit,
		"now":          c.Now.Format(DateTimeFormat),
	}
	maps.Copy(params, map[string]any{
		"discovery_statuses":  strings.Join(c.Taxonomy.DiscoveryStatuses, ","),
		"build_status":        c.Taxonomy.BuildStatus,
		"completion_statuses": strings.Join(c.Taxonomy.CompletionStatuses, ","),
		"hold_statuses":       strings.Join(c.Taxonomy.HoldStatuses, ","),
		"hold_health":         c.Taxonomy.HoldHealth,
	})
	return params
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processNow(cfg, input); err != nil {
		return err
	}
	if err := processTaxonomy(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	cfg.HistoryPath = input.HistoryPathStr
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 4. Phase and Threshold Validation ---
	cfg.Phase = schema.Phase(strings.ToLower(input.Phase))
	if cfg.Phase != schema.DiscoveryPhase && cfg.Phase != schema.BuildPhase {
		return fmt.Errorf("invalid phase '%s'. must be discovery or build", input.Phase)
	}
	if input.AtRiskWeeks <= 0 {
		return fmt.Errorf("at-risk-weeks must be greater than 0 (received %.2f)", input.AtRiskWeeks)
	}
	cfg.AtRiskWeeks = input.AtRiskWeeks

	return nil
}

// processNow resolves the computation time used for open boundaries.
func processNow(cfg *Config, input *ConfigRawInput) error {
	if input.Now == "" {
		cfg.Now = time.Now()
		return nil
	}
	t, err := time.Parse(DateTimeFormat, input.Now)
	if err != nil {
		return fmt.Errorf("invalid --now value '%s'. Expected ISO8601: %w", input.Now, err)
	}
	cfg.Now = t
	return nil
}

// processTaxonomy validates the status taxonomy from the config sources.
// The taxonomy has no built-in fallback: an unset taxonomy is a setup error
// for the whole run.
func processTaxonomy(cfg *Config, input *ConfigRawInput) error {
	cfg.Taxonomy = input.Statuses
	if err := cfg.Taxonomy.Validate(); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	}
	return nil
}

// validateBackendConfig validates the result store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreConnect)
}
