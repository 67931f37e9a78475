package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/polarize/schema"
)

// validRawInput returns a raw input mirroring the flag defaults.
func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:       string(schema.TextOut),
		Precision:    DefaultPrecision,
		Color:        "yes",
		CacheBackend: string(schema.SQLiteBackend),
	}
}

func writeTempCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("share\n1\n2\n"), 0o644))
	return path
}

func TestConfigClone(t *testing.T) {
	orig := &Config{Metric: schema.MetricGini, Seats: 5, Columns: ColumnOverrides{Share: "pct"}}
	clone := orig.Clone()

	require.NotSame(t, orig, clone)
	assert.Equal(t, orig, clone)

	clone.Seats = 9
	assert.Equal(t, 5, orig.Seats, "Mutating the clone must not touch the original")
}

func TestMetricParams(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		expected string
	}{
		{
			name:     "esteban-ray",
			cfg:      Config{Metric: schema.MetricEstebanRay, Alpha: 1.6, Normalize: true, Columns: ColumnOverrides{Pi: "w", Y: "pos"}},
			expected: "alpha=1.6;normalize=true;pi=w;y=pos",
		},
		{
			name:     "reynal-querol",
			cfg:      Config{Metric: schema.MetricReynalQuerol, Columns: ColumnOverrides{Rate: "pop"}},
			expected: "rate=pop",
		},
		{
			name:     "wang-tsui",
			cfg:      Config{Metric: schema.MetricWangTsui},
			expected: "pi=;y=",
		},
		{
			name:     "divisiveness",
			cfg:      Config{Metric: schema.MetricDivisiveness, Columns: ColumnOverrides{Unit: "region"}},
			expected: "unit=region;candidate=;votes=;score=",
		},
		{
			name:     "blais-lago",
			cfg:      Config{Metric: schema.MetricBlaisLago, Seats: 5},
			expected: "seats=5;party=;votes=",
		},
		{
			name:     "enp",
			cfg:      Config{Metric: schema.MetricENP, Alpha: 2},
			expected: "alpha=2;share=",
		},
		{
			name:     "gini",
			cfg:      Config{Metric: schema.MetricGini, Columns: ColumnOverrides{Share: "pct"}},
			expected: "share=pct",
		},
		{
			name:     "proportional",
			cfg:      Config{Metric: schema.MetricProportional, Seats: 10, Method: schema.DroopQuota},
			expected: "seats=10;method=droop;party=;votes=",
		},
		{
			name:     "unknown metric yields empty params",
			cfg:      Config{Metric: schema.Metric("bogus")},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.MetricParams())
		})
	}
}

func TestProcessAndValidateHappyPath(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.InputPathStr = writeTempCSV(t)
	input.Alpha = 1.6
	input.Seats = 5
	input.Method = "Droop"
	input.ShareCol = "pct"

	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, input.InputPathStr, cfg.InputPath)
	assert.Equal(t, 1.6, cfg.Alpha)
	assert.Equal(t, 5, cfg.Seats)
	assert.Equal(t, schema.DroopQuota, cfg.Method, "Quota methods are lowercased")
	assert.Equal(t, "pct", cfg.Columns.Share)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
	assert.True(t, cfg.UseColors)
}

func TestProcessAndValidateInputFlagFallback(t *testing.T) {
	cfg := &Config{}
	input := validRawInput()
	input.Input = writeTempCSV(t)

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, input.Input, cfg.InputPath, "The --input flag backs the positional argument")
}

func TestProcessAndValidateNoDataset(t *testing.T) {
	// Management commands run without a dataset
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))
	assert.Empty(t, cfg.InputPath)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(input *ConfigRawInput)
		errPart string
	}{
		{
			name:    "precision too small",
			mutate:  func(in *ConfigRawInput) { in.Precision = 0 },
			errPart: "precision must be between",
		},
		{
			name:    "precision too large",
			mutate:  func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 },
			errPart: "precision must be between",
		},
		{
			name:    "invalid output mode",
			mutate:  func(in *ConfigRawInput) { in.Output = "xml" },
			errPart: "invalid output format",
		},
		{
			name:    "invalid color value",
			mutate:  func(in *ConfigRawInput) { in.Color = "maybe" },
			errPart: "invalid --color value",
		},
		{
			name:    "invalid quota method",
			mutate:  func(in *ConfigRawInput) { in.Method = "imperiali" },
			errPart: "invalid quota method",
		},
		{
			name:    "invalid cache backend",
			mutate:  func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			errPart: "invalid cache backend",
		},
		{
			name:    "mysql cache needs connection string",
			mutate:  func(in *ConfigRawInput) { in.CacheBackend = "mysql" },
			errPart: "connection string is required",
		},
		{
			name: "invalid runs backend",
			mutate: func(in *ConfigRawInput) {
				in.RunsBackend = "redis"
			},
			errPart: "invalid runs backend",
		},
		{
			name: "missing input file",
			mutate: func(in *ConfigRawInput) {
				in.InputPathStr = "/nonexistent/data.csv"
			},
			errPart: "cannot read input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)

			err := ProcessAndValidate(&Config{}, input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestProcessAndValidateDirectoryInput(t *testing.T) {
	input := validRawInput()
	input.InputPathStr = t.TempDir()

	err := ProcessAndValidate(&Config{}, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestProcessAndValidateSQLiteFileConflict(t *testing.T) {
	t.Run("default paths differ", func(t *testing.T) {
		input := validRawInput()
		input.RunsBackend = string(schema.SQLiteBackend)

		require.NoError(t, ProcessAndValidate(&Config{}, input))
	})

	t.Run("same explicit file rejected", func(t *testing.T) {
		shared := filepath.Join(t.TempDir(), "shared.db")
		input := validRawInput()
		input.CacheDBConnect = shared
		input.RunsBackend = string(schema.SQLiteBackend)
		input.RunsDBConnect = shared

		err := ProcessAndValidate(&Config{}, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different SQLite database files")
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite accepts empty", schema.SQLiteBackend, "", false},
		{"none accepts anything", schema.NoneBackend, "whatever", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/polarize", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/polarize", true},
		{"mysql missing database", schema.MySQLBackend, "root:pw@tcp(localhost:3306)", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=polarize", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=polarize", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRevalidateMetricRequest(t *testing.T) {
	dataset := writeTempCSV(t)

	t.Run("valid request", func(t *testing.T) {
		cfg := &Config{Metric: schema.MetricGini, InputPath: dataset}
		assert.NoError(t, RevalidateMetricRequest(cfg))
	})

	t.Run("unknown metric", func(t *testing.T) {
		cfg := &Config{Metric: schema.Metric("herfindahl"), InputPath: dataset}
		err := RevalidateMetricRequest(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid metric")
	})

	t.Run("bad quota method", func(t *testing.T) {
		cfg := &Config{Metric: schema.MetricProportional, Method: schema.QuotaMethod("imperiali"), InputPath: dataset}
		err := RevalidateMetricRequest(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid quota method")
	})

	t.Run("missing input path", func(t *testing.T) {
		cfg := &Config{Metric: schema.MetricGini}
		err := RevalidateMetricRequest(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input_path is required")
	})

	t.Run("directory input", func(t *testing.T) {
		cfg := &Config{Metric: schema.MetricGini, InputPath: t.TempDir()}
		err := RevalidateMetricRequest(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}

func TestProcessProfilingConfig(t *testing.T) {
	t.Run("empty prefix leaves profiling off", func(t *testing.T) {
		profile := &ProfileConfig{}
		require.NoError(t, ProcessProfilingConfig(profile, ""))
		assert.False(t, profile.Enabled)
	})

	t.Run("prefix enables profiling", func(t *testing.T) {
		profile := &ProfileConfig{}
		require.NoError(t, ProcessProfilingConfig(profile, "perf"))
		assert.True(t, profile.Enabled)
		assert.Equal(t, "perf", profile.Prefix)
	})
}
