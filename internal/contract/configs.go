package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/polarize/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 4
	MaxPrecision     = 8
	DefaultAlpha     = 0.0
	DefaultENPAlpha  = 2.0
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ColumnOverrides holds the user-provided column-role names. An empty
// field means the metric's documented default column name applies.
type ColumnOverrides struct {
	Pi        string
	Y         string
	Rate      string
	Unit      string
	Candidate string
	Votes     string
	Score     string
	Party     string
	Share     string
}

// Config holds the runtime configuration for a computation.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath string
	Metric    schema.Metric

	Alpha     float64
	Seats     int
	Method    schema.QuotaMethod
	Normalize bool
	Columns   ColumnOverrides

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	NoCache        bool
	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Input          string  `mapstructure:"input"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Precision      int     `mapstructure:"precision"`
	Width          int     `mapstructure:"width"`
	Color          string  `mapstructure:"color"`
	Alpha          float64 `mapstructure:"alpha"`
	Seats          int     `mapstructure:"seats"`
	Method         string  `mapstructure:"method"`
	Normalize      bool    `mapstructure:"normalize"`
	NoCache        bool    `mapstructure:"no-cache"`
	CacheBackend   string  `mapstructure:"cache-backend"`
	CacheDBConnect string  `mapstructure:"cache-db-connect"`
	RunsBackend    string  `mapstructure:"runs-backend"`
	RunsDBConnect  string  `mapstructure:"runs-db-connect"`

	// --- Column-role overrides ---
	PiCol        string `mapstructure:"pi-col"`
	YCol         string `mapstructure:"y-col"`
	RateCol      string `mapstructure:"rate-col"`
	UnitCol      string `mapstructure:"unit-col"`
	CandidateCol string `mapstructure:"candidate-col"`
	VotesCol     string `mapstructure:"votes-col"`
	ScoreCol     string `mapstructure:"score-col"`
	PartyCol     string `mapstructure:"party-col"`
	ShareCol     string `mapstructure:"share-col"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MetricParams returns the canonical parameter string for the configured
// metric. It feeds cache keys and the run history, so the encoding must
// stay stable across releases.
func (c *Config) MetricParams() string {
	cols := c.Columns
	switch c.Metric {
	case schema.MetricEstebanRay:
		return fmt.Sprintf("alpha=%g;normalize=%t;pi=%s;y=%s", c.Alpha, c.Normalize, cols.Pi, cols.Y)
	case schema.MetricReynalQuerol:
		return fmt.Sprintf("rate=%s", cols.Rate)
	case schema.MetricWangTsui:
		return fmt.Sprintf("pi=%s;y=%s", cols.Pi, cols.Y)
	case schema.MetricDivisiveness, schema.MetricWithin, schema.MetricBetween:
		return fmt.Sprintf("unit=%s;candidate=%s;votes=%s;score=%s",
			cols.Unit, cols.Candidate, cols.Votes, cols.Score)
	case schema.MetricBlaisLago:
		return fmt.Sprintf("seats=%d;party=%s;votes=%s", c.Seats, cols.Party, cols.Votes)
	case schema.MetricGrofmanSelb, schema.MetricGini:
		return fmt.Sprintf("share=%s", cols.Share)
	case schema.MetricENP:
		return fmt.Sprintf("alpha=%g;share=%s", c.Alpha, cols.Share)
	case schema.MetricDHondt:
		return fmt.Sprintf("seats=%d;party=%s;votes=%s", c.Seats, cols.Party, cols.Votes)
	case schema.MetricProportional:
		return fmt.Sprintf("seats=%d;method=%s;party=%s;votes=%s", c.Seats, c.Method, cols.Party, cols.Votes)
	default:
		return ""
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processMetricParams(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveInputPath(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("connection string is required when using %s backend", backend)
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

// validateBackendConfigs validates cache and runs backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Runs Backend Validation ---
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
	if cfg.RunsBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
			return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
		}
		cfg.RunsDBConnect = input.RunsDBConnect
		if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
			return err
		}

		// Cache and run history must not share a SQLite file
		if cfg.CacheBackend == schema.SQLiteBackend && cfg.RunsBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			runsDBPath := cfg.RunsDBConnect
			if runsDBPath == "" {
				runsDBPath = GetRunsDBFilePath()
			}
			if cacheDBPath == runsDBPath {
				return fmt.Errorf("cache and run storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-metric fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.NoCache = input.NoCache

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	return nil
}

// processMetricParams transfers metric parameters and column overrides.
// Metric-specific domain checks (seat counts, alpha constraints) live in
// core, where the formulas are; the CLI layer only normalizes inputs.
func processMetricParams(cfg *Config, input *ConfigRawInput) error {
	cfg.Alpha = input.Alpha
	cfg.Seats = input.Seats
	cfg.Normalize = input.Normalize

	method := schema.QuotaMethod(strings.ToLower(input.Method))
	if method != "" {
		if _, ok := schema.ValidQuotaMethods[method]; !ok {
			return fmt.Errorf("invalid quota method '%s'. must be hare or droop", input.Method)
		}
	}
	cfg.Method = method

	cfg.Columns = ColumnOverrides{
		Pi:        input.PiCol,
		Y:         input.YCol,
		Rate:      input.RateCol,
		Unit:      input.UnitCol,
		Candidate: input.CandidateCol,
		Votes:     input.VotesCol,
		Score:     input.ScoreCol,
		Party:     input.PartyCol,
		Share:     input.ShareCol,
	}
	return nil
}

// resolveInputPath picks the dataset path from the positional argument or
// the --input flag and verifies it points at a readable file.
func resolveInputPath(cfg *Config, input *ConfigRawInput) error {
	path := input.InputPathStr
	if path == "" {
		path = input.Input
	}
	if path == "" {
		return nil // management commands run without a dataset
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read input %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %q is a directory, expected a CSV file", path)
	}
	cfg.InputPath = path
	return nil
}

// RevalidateMetricRequest re-checks a cloned config after tool or API
// callers mutate it directly, bypassing the flag pipeline.
func RevalidateMetricRequest(cfg *Config) error {
	if _, ok := schema.ValidMetrics[cfg.Metric]; !ok {
		return fmt.Errorf("invalid metric '%s'", cfg.Metric)
	}
	if cfg.Method != "" {
		if _, ok := schema.ValidQuotaMethods[cfg.Method]; !ok {
			return fmt.Errorf("invalid quota method '%s'. must be hare or droop", cfg.Method)
		}
	}
	if cfg.InputPath == "" {
		return fmt.Errorf("input_path is required")
	}
	info, err := os.Stat(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("cannot read input %q: %w", cfg.InputPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("input %q is a directory, expected a CSV file", cfg.InputPath)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
