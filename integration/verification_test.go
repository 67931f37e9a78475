//go:build basic

// Package integration contains integration tests for polarize.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Or use: make test-integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/polarize/schema"
)

// runJSON runs a polarize metric command with JSON output and decodes the result.
func runJSON(t *testing.T, args ...string) schema.Result {
	t.Helper()

	outputFile := filepath.Join(t.TempDir(), "result.json")
	fullArgs := append(args, "--output", "json", "--output-file", outputFile, "--no-cache", "--cache-backend", "none")

	polarizePath := getPolarizeBinary()
	cmd := exec.Command(polarizePath, fullArgs...)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "Command failed: %s\nOutput: %s", cmd.String(), string(output))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var result schema.Result
	require.NoError(t, json.Unmarshal(data, &result))
	return result
}

// TestGiniVerification checks the CLI against a hand-computed Gini value.
func TestGiniVerification(t *testing.T) {
	fixture := writeSharesFixture(t)

	result := runJSON(t, "gini", fixture)
	assert.Equal(t, schema.MetricGini, result.Metric)
	assert.InDelta(t, 0.25, result.Value, 1e-9, "Gini over 1,2,3,4 is exactly 0.25")
	assert.Equal(t, 4, result.Rows)
}

// TestENPVerification checks that two equal parties yield an ENP of exactly 2.
func TestENPVerification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shares.csv")
	writeRows(t, path, [][]string{{"share"}, {"0.5"}, {"0.5"}})

	result := runJSON(t, "enp", path)
	assert.Equal(t, schema.MetricENP, result.Metric)
	assert.InDelta(t, 2.0, result.Value, 1e-9)
}

// TestDHondtVerification checks seat totals and the per-party breakdown.
func TestDHondtVerification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.csv")
	writeRows(t, path, [][]string{
		{"party", "votes"},
		{"A", "5000"},
		{"B", "3000"},
		{"C", "2000"},
	})

	result := runJSON(t, "dhondt", path, "--seats", "5")
	assert.Equal(t, schema.MetricDHondt, result.Metric)
	assert.InDelta(t, 5.0, result.Value, 1e-12)
	require.NotNil(t, result.Details)
	require.Equal(t, 3, result.Details.Len())

	// Seats across parties must sum to the requested total
	var total float64
	for i := 0; i < result.Details.Len(); i++ {
		seats, ok := result.Details.Float(i, "seats")
		require.True(t, ok)
		total += seats
	}
	assert.InDelta(t, 5.0, total, 1e-12)
}

// TestDivisivenessDecomposition checks that within + between equals the total.
func TestDivisivenessDecomposition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "districts.csv")
	writeRows(t, path, [][]string{
		{"unit", "candidate", "votes", "score"},
		{"north", "X", "600", "1"},
		{"north", "Y", "400", "2"},
		{"south", "X", "300", "1"},
		{"south", "Y", "700", "2"},
	})

	total := runJSON(t, "divisiveness", path)
	within := runJSON(t, "within", path)
	between := runJSON(t, "between", path)

	assert.InDelta(t, total.Value, within.Value+between.Value, 1e-9,
		"Divisiveness decomposes additively")
}

func writeRows(t *testing.T, path string, rows [][]string) {
	t.Helper()

	file, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	w := csv.NewWriter(file)
	require.NoError(t, w.WriteAll(rows))
}
