package cmd

import (
	"github.com/huangsam/polarize/core"
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/internal/iocache"
	"github.com/huangsam/polarize/schema"
	"github.com/spf13/cobra"
)

// divisivenessCmd computes total electoral divisiveness.
var divisivenessCmd = &cobra.Command{
	Use:   "divisiveness [input-file]",
	Short: "Compute total electoral divisiveness across units.",
	Long: `Compute electoral divisiveness from per-unit candidate results.

Divisiveness decomposes disagreement into two additive parts:
- within:  how split voters are inside each electoral unit
- between: how much units disagree with each other about candidates

The total is the sum of both components. Per-candidate contributions are
reported in the details table.

Expects four columns:
- unit:      the electoral unit (district, precinct, region)
- candidate: the candidate identifier
- votes:     vote counts for the candidate in the unit
- score:     the candidate's position or approval score

Examples:
  # Total divisiveness over district results
  polarize divisiveness districts.csv

  # Custom column names
  polarize divisiveness results.csv --unit-col region --votes-col ballots

  # Export per-candidate breakdown to Parquet
  polarize divisiveness districts.csv --output parquet --output-file div.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricDivisiveness
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute divisiveness", err)
		}
	},
}

// withinCmd computes the within-unit divisiveness component.
var withinCmd = &cobra.Command{
	Use:   "within [input-file]",
	Short: "Compute the within-unit divisiveness component.",
	Long: `Compute only the within-unit component of electoral divisiveness.

Measures how split voters are inside each electoral unit, ignoring
disagreement across units. High values mean individual districts are
internally contested.

Expects the same columns as the divisiveness command.

Examples:
  # Within-unit splits only
  polarize within districts.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricWithin
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute within divisiveness", err)
		}
	},
}

// betweenCmd computes the between-unit divisiveness component.
var betweenCmd = &cobra.Command{
	Use:   "between [input-file]",
	Short: "Compute the between-unit divisiveness component.",
	Long: `Compute only the between-unit component of electoral divisiveness.

Measures how much electoral units disagree with each other about the
candidates. A single-unit dataset always yields 0 because there is nothing
to disagree across.

Expects the same columns as the divisiveness command.

Examples:
  # Cross-unit disagreement only
  polarize between districts.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricBetween
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute between divisiveness", err)
		}
	},
}
