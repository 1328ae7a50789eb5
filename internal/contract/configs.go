package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ossmetrics/pulse/schema"
)

// Default values for configuration.
const (
	DefaultOffset    = 1
	MaxOffset        = 40
	DefaultPrecision = 1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateOnlyFormat is the short calendar-date form accepted wherever a
// timestamp would be overkill.
const DateOnlyFormat = "2006-01-02"

// Config holds the runtime configuration for pulse commands.
// This struct remains the "final, validated" config.
type Config struct {
	Project    string            // Project name the series is stored under
	RepoPath   string            // Absolute path to the Git repository (collect only)
	From       time.Time         // Start of the collection/display range
	To         time.Time         // End of the collection/display range
	Domain     schema.Domain
	Offset     int               // Quarters to skip before the trailing-year window
	Reverse    bool              // Descending order for preview
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	ImportFile string
	Width      int               // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored trend labels in table output
}

// Clone returns a shallow copy of the config. Handlers that adjust fields per
// request should clone first so the base config stays untouched.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Project        string `mapstructure:"project"`
	FromStr        string `mapstructure:"from"`
	ToStr          string `mapstructure:"to"`
	Domain         string `mapstructure:"domain"`
	Offset         int    `mapstructure:"offset"`
	Reverse        bool   `mapstructure:"reverse"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	ImportFile     string `mapstructure:"file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input); err != nil {
		return err
	}
	return resolveProjectAndRepo(ctx, cfg, client, input)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.ImportFile = input.ImportFile
	cfg.Reverse = input.Reverse
	cfg.Width = input.Width

	if input.Offset < 0 || input.Offset > MaxOffset {
		return fmt.Errorf("offset must be between 0 and %d (received %d)", MaxOffset, input.Offset)
	}
	cfg.Offset = input.Offset

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	cfg.Domain = schema.Domain(strings.ToLower(input.Domain))
	if _, ok := schema.ValidDomains[cfg.Domain]; !ok {
		return fmt.Errorf("invalid domain '%s'. must be agility or community", input.Domain)
	}

	cfg.UseColors = parseBoolFlag(input.Color)
	return nil
}

// validateBackendConfig validates the series store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString performs early validation of connection
// strings so misconfiguration fails before any collection work happens.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
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

// processTimeRange parses the from/to inputs. Defaults cover the trailing
// year ending now.
func processTimeRange(cfg *Config, input *ConfigRawInput) error {
	cfg.To = time.Now().UTC()
	cfg.From = cfg.To.AddDate(-1, 0, 0)

	if input.FromStr != "" {
		t, err := parseFlexibleTime(input.FromStr)
		if err != nil {
			return fmt.Errorf("invalid from date '%s'. must be RFC3339 or YYYY-MM-DD: %w", input.FromStr, err)
		}
		cfg.From = t
	}
	if input.ToStr != "" {
		t, err := parseFlexibleTime(input.ToStr)
		if err != nil {
			return fmt.Errorf("invalid to date '%s'. must be RFC3339 or YYYY-MM-DD: %w", input.ToStr, err)
		}
		cfg.To = t
	}
	if cfg.From.After(cfg.To) {
		return fmt.Errorf("from (%s) cannot be after to (%s)",
			cfg.From.Format(DateTimeFormat), cfg.To.Format(DateTimeFormat))
	}
	return nil
}

// resolveProjectAndRepo resolves the repository root (when a repo path was
// given) and derives the project name from it if --project was not set.
func resolveProjectAndRepo(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	cfg.Project = input.Project

	if input.RepoPathStr == "" {
		if cfg.Project == "" {
			return fmt.Errorf("--project is required when no repository path is given")
		}
		return nil
	}

	root, err := client.GetRepoRoot(ctx, input.RepoPathStr)
	if err != nil {
		return fmt.Errorf("cannot resolve Git repository at %q: %w", input.RepoPathStr, err)
	}
	cfg.RepoPath = root

	if cfg.Project == "" {
		cfg.Project = projectNameFromPath(root)
	}
	return nil
}

// parseFlexibleTime accepts RFC3339 timestamps or bare calendar dates.
func parseFlexibleTime(s string) (time.Time, error) {
	if t, err := time.Parse(DateTimeFormat, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DateOnlyFormat, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// parseBoolFlag interprets yes/no style flag values, defaulting to true.
func parseBoolFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "no", "false", "0", "off":
		return false
	default:
		return true
	}
}
