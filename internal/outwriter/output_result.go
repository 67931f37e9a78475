package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/internal/parquet"
	"github.com/huangsam/polarize/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// writeResultTable generates and writes the human-readable table.
func writeResultTable(result *schema.Result, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	details := result.Details
	if details != nil && details.Len() > 0 {
		table := tablewriter.NewWriter(writer)

		// 1. Define Headers
		columns := details.Columns()
		headers := make([]string, len(columns))
		copy(headers, columns)
		table.Header(headers)

		// 2. Configure Separators/Borders to match a minimal look
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})

		// 3. Populate Rows
		labelWidth := getMaxTableLabelWidth(cfg, len(columns)-1)
		var data [][]string
		for i := 0; i < details.Len(); i++ {
			row := make([]string, 0, len(columns))
			for _, col := range columns {
				cell, _ := details.Value(i, col)
				switch v := cell.(type) {
				case float64:
					row = append(row, fmtFloat(v))
				default:
					row = append(row, contract.TruncateLabel(details.Label(i, col), labelWidth))
				}
			}
			data = append(data, row)
		}

		// 4. Render the table
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	// Scalar summary and run stats
	if _, err := fmt.Fprintf(writer, "%s = %s\n", result.Metric, labeledValue(result, cfg, fmtFloat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Computed over %d rows in %v. Cache backend: %s\n", result.Rows, duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeResultCSV handles opening the file and calling the CSV writer.
func writeResultCSV(result *schema.Result, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVRows(csvWriter, result, fmtFloat)
	}, "Wrote CSV")
}

// writeCSVRows writes either the per-row details or the scalar value.
func writeCSVRows(w *csv.Writer, result *schema.Result, fmtFloat func(float64) string) error {
	details := result.Details
	if details == nil || details.Len() == 0 {
		// Scalar metrics emit a single metric/value row
		if err := w.Write([]string{"metric", "value"}); err != nil {
			return err
		}
		return w.Write([]string{string(result.Metric), fmtFloat(result.Value)})
	}

	columns := details.Columns()
	if err := w.Write(columns); err != nil {
		return err
	}
	for i := 0; i < details.Len(); i++ {
		rec := make([]string, 0, len(columns))
		for _, col := range columns {
			cell, _ := details.Value(i, col)
			switch v := cell.(type) {
			case float64:
				rec = append(rec, fmtFloat(v))
			default:
				rec = append(rec, details.Label(i, col))
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeResultParquet exports per-row details to a Parquet file.
func writeResultParquet(result *schema.Result, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errors.New("--output-file is required for parquet output")
	}
	if result.Details == nil || result.Details.Len() == 0 {
		return fmt.Errorf("parquet output is only supported for metrics with per-row details, not %s", result.Metric)
	}

	switch result.Metric {
	case schema.MetricDivisiveness, schema.MetricWithin, schema.MetricBetween:
		rows := parquet.ConvertCandidateDetails(result.Metric, result.Details)
		if err := parquet.WriteCandidateBreakdownParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
	case schema.MetricDHondt, schema.MetricProportional, schema.MetricBlaisLago:
		rows := parquet.ConvertAllocationDetails(result.Metric, result.Details)
		if err := parquet.WritePartyAllocationParquet(rows, cfg.OutputFile); err != nil {
			return err
		}
	default:
		return fmt.Errorf("parquet output is not supported for metric %s", result.Metric)
	}

	fmt.Printf("Exported %d rows to: %s\n", result.Details.Len(), cfg.OutputFile)
	return nil
}
