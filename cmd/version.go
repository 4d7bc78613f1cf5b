package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of jupiter.",
	Long: `Display version information including build details.

Useful when reporting a bug or comparing audits produced by different builds.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("jupiter CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s (%s/%s)\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
		cmd.Printf("  Formats: .csv, .xlsx, .xlsm\n")
	},
}
