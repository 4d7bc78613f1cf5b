// Package cmd defines the command-line interface for jupiter.
package cmd

import (
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/StephanieJJ/jupiter-audit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("contacts", "", "Path to the contacts export (CSV or XLSX)")
	rootCmd.PersistentFlags().String("companies", "", "Path to the companies export (CSV or XLSX)")
	rootCmd.PersistentFlags().String("tickets", "", "Path to the tickets export (CSV or XLSX)")
	rootCmd.PersistentFlags().String("sheet", "", "XLSX sheet to read (defaults to the first sheet)")
	rootCmd.PersistentFlags().String("now", "", "Evaluation instant in ISO8601, YYYY-MM-DD or time ago (defaults to now)")
	rootCmd.PersistentFlags().Int("cold-days", schema.DefaultColdDays, "Days without activity before a contact is cold")
	rootCmd.PersistentFlags().Int("critical-hours", schema.DefaultCriticalHours, "Hours an open ticket may age before it is critical")
	rootCmd.PersistentFlags().Int("top-industries", schema.DefaultTopIndustries, "Number of industries to rank")
	rootCmd.PersistentFlags().Int("max-rows", 0, "Read at most this many rows per export (0 = all)")
	rootCmd.PersistentFlags().Bool("detail", false, "Print recommendation impact and extra columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of checkCmd to Viper
	checkCmd.Flags().String("thresholds-override", "", "Minimum health scores for CI/CD gating (format: 'contacts:70,companies:70,tickets:70,overall:70,post:70')")
	if err := viper.BindPFlags(checkCmd.Flags()); err != nil {
		contract.LogFatal("Error binding check flags", err)
	}
}
