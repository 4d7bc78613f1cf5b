package cmd

import (
	"github.com/StephanieJJ/jupiter-audit/core"
	"github.com/StephanieJJ/jupiter-audit/internal/contract"
	"github.com/spf13/cobra"
)

// rulesCmd prints the scoring and recommendation rules.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the health score formula, column rules and recommendation triggers.",
	Long: `Display the rules jupiter applies without reading any export.

Shows:
- Health score penalties with their multipliers and caps
- How each semantic column is found among the export headers
- The trigger of every recommendation, using configured thresholds

Trigger thresholds can be changed in the 'rules' section of .jupiter.yaml.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot show rules", err)
		}
	},
}
