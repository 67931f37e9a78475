package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{
			name:     "smallest value possible",
			input:    0.0,
			expected: LowValue,
		},
		{
			name:     "just before moderate",
			input:    0.399,
			expected: LowValue,
		},
		{
			name:     "exactly moderate",
			input:    0.4,
			expected: ModerateValue,
		},
		{
			name:     "just before high",
			input:    0.599,
			expected: ModerateValue,
		},
		{
			name:     "exactly high",
			input:    0.6,
			expected: HighValue,
		},
		{
			name:     "just before critical",
			input:    0.799,
			expected: HighValue,
		},
		{
			name:     "exactly critical",
			input:    0.8,
			expected: CriticalValue,
		},
		{
			name:     "above unit range clamps to critical",
			input:    1.5,
			expected: CriticalValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		label string
	}{
		{"low", 0.3, LowValue},
		{"moderate", 0.5, ModerateValue},
		{"high", 0.7, HighValue},
		{"critical", 0.9, CriticalValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorLabel(tt.value)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		file, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, file)
	})

	t.Run("valid path creates file", func(t *testing.T) {
		tempFile := filepath.Join(t.TempDir(), "test_output.txt")

		file, err := SelectOutputFile(tempFile)
		require.NoError(t, err)
		assert.NotNil(t, file)
		_ = file.Close()

		// Verify file was created
		_, err = os.Stat(tempFile)
		assert.NoError(t, err)
	})
}

func TestCacheKey(t *testing.T) {
	raw := []byte("share\n1\n2\n3\n")

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, CacheKey(raw, "gini", "share="), CacheKey(raw, "gini", "share="))
	})

	t.Run("data changes the key", func(t *testing.T) {
		other := []byte("share\n1\n2\n4\n")
		assert.NotEqual(t, CacheKey(raw, "gini", "share="), CacheKey(other, "gini", "share="))
	})

	t.Run("metric changes the key", func(t *testing.T) {
		assert.NotEqual(t, CacheKey(raw, "gini", "share="), CacheKey(raw, "enp", "share="))
	})

	t.Run("params change the key", func(t *testing.T) {
		assert.NotEqual(t, CacheKey(raw, "enp", "alpha=2"), CacheKey(raw, "enp", "alpha=3"))
	})

	t.Run("separator keeps fields apart", func(t *testing.T) {
		// "ab"+"c" and "a"+"bc" must not collide
		assert.NotEqual(t, CacheKey(raw, "ab", "c"), CacheKey(raw, "a", "bc"))
	})
}

func TestGetCacheDBFilePath(t *testing.T) {
	path := GetCacheDBFilePath()

	// Should not be empty
	assert.NotEmpty(t, path)

	// Should contain the database name
	assert.Contains(t, path, ".polarize_cache.db")

	// Should be in home directory
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, homeDir), "path %s should start with home dir %s", path, homeDir)
}

func TestGetRunsDBFilePath(t *testing.T) {
	path := GetRunsDBFilePath()

	assert.NotEmpty(t, path)
	assert.Contains(t, path, ".polarize_runs.db")
	assert.NotEqual(t, GetCacheDBFilePath(), path, "Cache and run history must not share a file")
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		maxWidth int
		expected string
	}{
		{"short label untouched", "north", 10, "north"},
		{"exact width untouched", "north", 5, "north"},
		{"long label keeps tail", "district-of-columbia", 10, "...olumbia"},
		{"width too small to truncate", "district", 3, "district"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateLabel(tt.label, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{"yes", true, false},
		{"YES", true, false},
		{"true", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
