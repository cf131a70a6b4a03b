package cmd

import (
	"github.com/spf13/cobra"

	"timespent/internal/diagnostics"
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration and database connectivity",
	Long: `Run self-checks against the configured databases and print a report:
environment, active SQLite driver, configured paths and whether they
exist, table names, a live connectivity probe, and recommendations for
anything that failed. Each check is isolated; one failure never hides
the rest of the report.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := diagnostics.Run(ctx.Config, Version)
	diagnostics.Render(report, ctx.CLIFormatter())
	return nil
}
