// Package cmd defines the command-line interface for polarize.
package cmd

import (
	"github.com/huangsam/polarize/internal/contract"
	"github.com/huangsam/polarize/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(estebanRayCmd)
	rootCmd.AddCommand(reynalQuerolCmd)
	rootCmd.AddCommand(wangTsuiCmd)
	rootCmd.AddCommand(divisivenessCmd)
	rootCmd.AddCommand(withinCmd)
	rootCmd.AddCommand(betweenCmd)
	rootCmd.AddCommand(blaisLagoCmd)
	rootCmd.AddCommand(grofmanSelbCmd)
	rootCmd.AddCommand(enpCmd)
	rootCmd.AddCommand(giniCmd)
	rootCmd.AddCommand(dhondtCmd)
	rootCmd.AddCommand(proportionalCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to the CSV dataset (optionally gzip-compressed)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Float64("alpha", contract.DefaultAlpha, "Sensitivity exponent for esteban-ray and enp")
	rootCmd.PersistentFlags().Int("seats", 0, "Seat count for allocation and blais-lago")
	rootCmd.PersistentFlags().String("method", "", "Quota method for proportional allocation: hare or droop")
	rootCmd.PersistentFlags().Bool("normalize", false, "Normalize esteban-ray by total proportion mass")
	rootCmd.PersistentFlags().Bool("no-cache", false, "Skip the result cache for this run")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("runs-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("runs-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("pi-col", "", "Column holding group proportions")
	rootCmd.PersistentFlags().String("y-col", "", "Column holding group positions")
	rootCmd.PersistentFlags().String("rate-col", "", "Column holding per-group rates")
	rootCmd.PersistentFlags().String("unit-col", "", "Column holding the electoral unit identifier")
	rootCmd.PersistentFlags().String("candidate-col", "", "Column holding the candidate identifier")
	rootCmd.PersistentFlags().String("votes-col", "", "Column holding vote counts")
	rootCmd.PersistentFlags().String("score-col", "", "Column holding candidate scores")
	rootCmd.PersistentFlags().String("party-col", "", "Column holding party identifiers")
	rootCmd.PersistentFlags().String("share-col", "", "Column holding vote or seat shares")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
