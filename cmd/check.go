package cmd

import (
	"github.com/StephanieJJ/jupiter-audit/core"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Enforce minimum health scores for CI/CD pipelines (fails build on violations)",
	Long: `Audit the exports and compare health scores with minimum thresholds.

Designed for scheduled data quality jobs and pipelines - exits with a non-zero
code when any gate falls below its threshold.

Gates: contacts, companies, tickets, overall, post (after aggregation)
Default thresholds: 70.0 for every gate

Examples:
  # Gate on the default thresholds
  jupiter check --contacts contacts.csv --companies companies.csv

  # Custom thresholds per gate
  jupiter check --contacts contacts.csv --tickets tickets.csv --thresholds-override "contacts:80,tickets:60,overall:75"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Health check failed", core.ExecuteCheck),
}
