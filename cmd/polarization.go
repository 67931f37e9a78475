package cmd

import (
	"github.com/huangsam/polarize/core"
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/internal/iocache"
	"github.com/huangsam/polarize/schema"
	"github.com/spf13/cobra"
)

// estebanRayCmd computes the Esteban-Ray polarization index.
var estebanRayCmd = &cobra.Command{
	Use:   "esteban-ray [input-file]",
	Short: "Compute the Esteban-Ray polarization index.",
	Long: `Compute the Esteban-Ray index over group proportions and positions.

The index grows when the population clusters into large, internally similar
groups that sit far apart from each other. The alpha exponent controls how
much group size amplifies antagonism: alpha 0 reduces to a pure distance
measure, while values up to 1.6 weight identification with large groups.

Expects two numeric columns:
- pi: the proportion of the population in each group
- y:  the position of each group on the issue axis

Examples:
  # Default alpha of 0
  polarize esteban-ray survey.csv

  # Classic polarization sensitivity
  polarize esteban-ray survey.csv --alpha 1.6

  # Normalize by total proportion mass and rename columns
  polarize esteban-ray survey.csv --normalize --pi-col weight --y-col stance`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricEstebanRay
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute esteban-ray", err)
		}
	},
}

// reynalQuerolCmd computes the Reynal-Querol polarization index.
var reynalQuerolCmd = &cobra.Command{
	Use:   "reynal-querol [input-file]",
	Short: "Compute the Reynal-Querol polarization index.",
	Long: `Compute the Reynal-Querol index over group rates.

The index peaks at 1 when the population splits into two equal halves and
falls toward 0 for either a single dominant group or heavy fragmentation.
Rates are used as given; supply proportions for the usual [0, 1] reading.

Expects one numeric column:
- rate: the size or rate of each group

Examples:
  # Two-bloc detection over vote shares
  polarize reynal-querol blocs.csv

  # Custom column name
  polarize reynal-querol blocs.csv --rate-col population`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricReynalQuerol
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute reynal-querol", err)
		}
	},
}

// wangTsuiCmd computes the Wang-Tsui polarization index.
var wangTsuiCmd = &cobra.Command{
	Use:   "wang-tsui [input-file]",
	Short: "Compute the Wang-Tsui polarization index.",
	Long: `Compute the Wang-Tsui spread index over group proportions and positions.

Measures how far the distribution spreads away from its proportion-weighted
mean position, weighting each group by its share of the population. Unlike
Esteban-Ray it rewards distance from the center rather than clustering.

Expects two numeric columns:
- pi: the proportion of the population in each group
- y:  the position of each group on the issue axis

Examples:
  # Median-spread polarization
  polarize wang-tsui survey.csv

  # Export to JSON for downstream tooling
  polarize wang-tsui survey.csv --output json --output-file wt.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricWangTsui
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute wang-tsui", err)
		}
	},
}
