// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/schema"
)

// PrintResult outputs a metric result, dispatching based on the output format configured.
func PrintResult(result *schema.Result, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeResultJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeResultCSV(result, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeResultParquet(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeResultTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeResultJSON handles opening the file and calling the JSON writer.
func writeResultJSON(result *schema.Result, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// labeledValue formats the scalar summary, attaching a severity label for
// index metrics. Seat allocations report counts, not [0, 1] indices.
func labeledValue(result *schema.Result, cfg *contract.Config, fmtFloat func(float64) string) string {
	if isAllocationMetric(result.Metric) {
		return fmt.Sprintf("%d seats", int(result.Value))
	}
	value := fmtFloat(result.Value)
	if result.Metric == schema.MetricENP {
		return value
	}
	if cfg.UseColors {
		return fmt.Sprintf("%s (%s)", value, contract.GetColorLabel(result.Value))
	}
	return fmt.Sprintf("%s (%s)", value, contract.GetPlainLabel(result.Value))
}

// isAllocationMetric reports whether the metric produces seat counts.
func isAllocationMetric(metric schema.Metric) bool {
	return metric == schema.MetricDHondt || metric == schema.MetricProportional
}
