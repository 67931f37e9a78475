package cmd

import (
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/internal/outwriter"
	"github.com/spf13/cobra"
)

// metricsCmd displays the catalog of supported metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display definitions for all supported metrics",
	Long: `Show the definitions and groupings for every supported metric.

Provides complete transparency into what each command measures, including:
- Polarization indices (esteban-ray, reynal-querol, wang-tsui)
- Divisiveness decompositions (divisiveness, within, between)
- Competitiveness measures (blais-lago, grofman-selb, enp, gini)
- Seat allocation methods (dhondt, proportional)

No dataset is read - this is purely informational.

Examples:
  # Show the metric catalog
  polarize metrics

  # Machine-readable catalog
  polarize metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.PrintMetricsCatalog(cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
