package cmd

import (
	"github.com/huangsam/polarize/core"
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/internal/iocache"
	"github.com/huangsam/polarize/schema"
	"github.com/spf13/cobra"
)

// blaisLagoCmd computes the Blais-Lago competitiveness index.
var blaisLagoCmd = &cobra.Command{
	Use:   "blais-lago [input-file]",
	Short: "Compute the Blais-Lago competitiveness index.",
	Long: `Compute the Blais-Lago measure of how close the election was.

The index asks how many votes the runner-up needed to steal the last seat
from the winner, relative to district size. Values near 1 mean a photo
finish, values near 0 a landslide. Requires the district seat count because
the last seat is assigned with D'Hondt divisors.

Expects two columns:
- party: the party identifier
- votes: vote counts per party

Examples:
  # Five-seat district
  polarize blais-lago district.csv --seats 5

  # Custom column names
  polarize blais-lago district.csv --seats 3 --party-col list --votes-col ballots`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricBlaisLago
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute blais-lago", err)
		}
	},
}

// grofmanSelbCmd computes the Grofman-Selb competitiveness index.
var grofmanSelbCmd = &cobra.Command{
	Use:   "grofman-selb [input-file]",
	Short: "Compute the Grofman-Selb competitiveness index.",
	Long: `Compute the Grofman-Selb competitiveness measure over shares.

Contrasts the observed concentration of shares against the perfectly
competitive benchmark where every contestant holds an equal share. Values
near 1 indicate a tight race, values near 0 one-sided dominance.

Expects one numeric column:
- share: the vote or seat share per contestant

Examples:
  # Competitiveness of a party system
  polarize grofman-selb shares.csv

  # Custom column name
  polarize grofman-selb shares.csv --share-col pct`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricGrofmanSelb
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute grofman-selb", err)
		}
	},
}

// enpCmd computes the effective number of parties.
var enpCmd = &cobra.Command{
	Use:   "enp [input-file]",
	Short: "Compute the effective number of parties (Laakso-Taagepera).",
	Long: `Compute the effective number of parties from vote or seat shares.

The Laakso-Taagepera index counts parties weighted by their size: two equal
parties yield exactly 2, while one dominant party and several splinters
yield a value barely above 1. The alpha exponent generalizes the index;
the default of 2 is the classic formulation, and alpha 1 is undefined.

Expects one numeric column:
- share: the vote or seat share per party

Examples:
  # Classic ENP
  polarize enp shares.csv

  # Emphasize larger parties
  polarize enp shares.csv --alpha 3`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricENP
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute enp", err)
		}
	},
}

// giniCmd computes the Gini concentration index.
var giniCmd = &cobra.Command{
	Use:   "gini [input-file]",
	Short: "Compute the Gini concentration index over shares.",
	Long: `Compute the Gini index of inequality across shares.

Values near 0 mean shares are spread evenly across contestants, values
near 1 mean a single contestant holds almost everything. Useful for seat
concentration and malapportionment checks.

Expects one numeric column:
- share: the vote or seat share per contestant

Examples:
  # Seat concentration
  polarize gini seats.csv

  # Write CSV output for spreadsheets
  polarize gini seats.csv --output csv --output-file gini.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricGini
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot compute gini", err)
		}
	},
}
