package cmd

import (
	"github.com/StephanieJJ/jupiter-audit/core"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/spf13/cobra"
)

// healthCmd scores a single export.
var healthCmd = &cobra.Command{
	Use:   "health <path>",
	Short: "Show the health score of a single export.",
	Long: `Compute the 0-100 health score of one CSV or XLSX file.

The score starts at 100 and subtracts capped penalties for missing cells,
duplicate keys and empty strings. Run 'jupiter rules' to see the formula.

Examples:
  jupiter health contacts.csv
  jupiter health companies.xlsx --sheet Companies --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteHealth(rootCtx, cfg, fileLoader, args[0]); err != nil {
			contract.LogFatal("Cannot score health", err)
		}
	},
}
