package cmd

import (
	"github.com/huangsam/polarize/core"
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/internal/iocache"
	"github.com/huangsam/polarize/schema"
	"github.com/spf13/cobra"
)

// dhondtCmd allocates seats with the D'Hondt highest-averages method.
var dhondtCmd = &cobra.Command{
	Use:   "dhondt [input-file]",
	Short: "Allocate seats with the D'Hondt highest-averages method.",
	Long: `Allocate parliamentary seats from party vote counts using D'Hondt divisors.

Each seat goes to the party with the current highest quotient votes/(seats+1).
Ties resolve in favor of the party that appears first in the input. The
details table reports votes and seats per party.

Expects two columns:
- party: the party identifier
- votes: vote counts per party

Examples:
  # Allocate a five-seat district
  polarize dhondt votes.csv --seats 5

  # Export the seat table to Parquet
  polarize dhondt votes.csv --seats 5 --output parquet --output-file seats.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricDHondt
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot allocate seats with dhondt", err)
		}
	},
}

// proportionalCmd allocates seats with a largest-remainder quota.
var proportionalCmd = &cobra.Command{
	Use:   "proportional [input-file]",
	Short: "Allocate seats with a largest-remainder quota method.",
	Long: `Allocate parliamentary seats using the Hare or Droop quota.

Each party first receives the whole seats its quota entitles it to, then the
remaining seats go to the parties with the largest fractional remainders.
Hare (default) divides total votes by seats; Droop divides by seats+1 and
adds one, which slightly favors larger parties.

Expects two columns:
- party: the party identifier
- votes: vote counts per party

Examples:
  # Hare quota (default)
  polarize proportional votes.csv --seats 10

  # Droop quota
  polarize proportional votes.csv --seats 10 --method droop`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Metric = schema.MetricProportional
		if err := core.ExecuteMetric(rootCtx, cfg, iocache.Manager); err != nil {
			contract.LogFatal("Cannot allocate seats proportionally", err)
		}
	},
}
