package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/schema"
)

// metricGroups fixes the display order and grouping for the catalog.
var metricGroups = []struct {
	Title   string
	Metrics []schema.Metric
}{
	{
		Title:   "Polarization",
		Metrics: []schema.Metric{schema.MetricEstebanRay, schema.MetricReynalQuerol, schema.MetricWangTsui},
	},
	{
		Title:   "Divisiveness",
		Metrics: []schema.Metric{schema.MetricDivisiveness, schema.MetricWithin, schema.MetricBetween},
	},
	{
		Title:   "Competitiveness",
		Metrics: []schema.Metric{schema.MetricBlaisLago, schema.MetricGrofmanSelb, schema.MetricENP, schema.MetricGini},
	},
	{
		Title:   "Allocation",
		Metrics: []schema.Metric{schema.MetricDHondt, schema.MetricProportional},
	},
}

// PrintMetricsCatalog displays the definitions of all supported metrics.
// This is a static display that does not require any input data.
func PrintMetricsCatalog(cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONMetricsCatalog(w)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			writer := csv.NewWriter(w)
			defer writer.Flush()
			return writeCSVMetricsCatalog(writer)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTextMetricsCatalog(w)
		}, "Wrote text")
	}
}

// writeTextMetricsCatalog displays metrics in human-readable text format.
func writeTextMetricsCatalog(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "🗳️  Polarize Metrics\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "===================\n\n"); err != nil {
		return err
	}

	for _, group := range metricGroups {
		if _, err := fmt.Fprintf(w, "%s:\n", group.Title); err != nil {
			return err
		}
		for _, metric := range group.Metrics {
			if _, err := fmt.Fprintf(w, "   %-14s %s\n", metric, schema.MetricDescriptions[metric]); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	return nil
}

// writeJSONMetricsCatalog displays metrics in JSON format.
func writeJSONMetricsCatalog(w io.Writer) error {
	type catalogEntry struct {
		Metric      string `json:"metric"`
		Group       string `json:"group"`
		Description string `json:"description"`
	}

	var entries []catalogEntry
	for _, group := range metricGroups {
		for _, metric := range group.Metrics {
			entries = append(entries, catalogEntry{
				Metric:      string(metric),
				Group:       group.Title,
				Description: schema.MetricDescriptions[metric],
			})
		}
	}
	return writeJSON(w, entries)
}

// writeCSVMetricsCatalog displays metrics in CSV format.
func writeCSVMetricsCatalog(w *csv.Writer) error {
	if err := w.Write([]string{"metric", "group", "description"}); err != nil {
		return err
	}
	for _, group := range metricGroups {
		for _, metric := range group.Metrics {
			rec := []string{string(metric), group.Title, schema.MetricDescriptions[metric]}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
	}
	return nil
}
