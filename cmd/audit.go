package cmd

import (
	"github.com/StephanieJJ/jupiter-audit/core"
	"github.com/spf13/cobra"
)

// auditCmd runs the full audit over the configured exports.
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit CRM exports and print the report with recommendations.",
	Long: `Load the contacts, companies and tickets exports and run every analyzer.

The report covers:
- Health score per dataset, overall and after aggregation
- Duplicate and missing values
- Orphan contacts and companies without contacts
- Email validity and consumer domains
- Cold contacts and critical open tickets
- Ticket performance, churn risk and top industries
- Prioritized recommendations

Any subset of the exports may be supplied; analyzers that need a missing
dataset report no data.

Examples:
  # Audit all three exports
  jupiter audit --contacts contacts.csv --companies companies.csv --tickets tickets.xlsx

  # Reproduce a past audit with a fixed evaluation instant
  jupiter audit --contacts contacts.csv --now 2024-01-01

  # Stricter engagement window and more industries
  jupiter audit --contacts contacts.csv --companies companies.csv --cold-days 30 --top-industries 5

  # Export the report for tracking
  jupiter audit --contacts contacts.csv --output json --output-file audit.json
  jupiter audit --contacts contacts.csv --output parquet --output-file audit.parquet`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("Cannot run audit", core.ExecuteAudit),
}
