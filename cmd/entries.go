package cmd

import (
	"github.com/spf13/cobra"

	"timespent/internal/output"
)

var entriesFlagLimit int

// entriesCmd represents the entries command.
var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Show recent time entries",
	Long: `Show the most recent time entries as a table, oldest first.
Column names come from the live table schema, so the display follows
whatever columns the entries table actually has.`,
	RunE: runEntries,
}

func init() {
	entriesCmd.Flags().IntVarP(&entriesFlagLimit, "limit", "n", 0,
		"Maximum entries to show (default: recent_limit from config)")

	rootCmd.AddCommand(entriesCmd)
}

func runEntries(cmd *cobra.Command, args []string) error {
	limit := entriesFlagLimit
	if limit <= 0 {
		limit = ctx.Config.RecentLimit
	}

	raw := ctx.EntryRepo.RecentRaw(limit)
	cli := ctx.CLIFormatter()
	if raw == nil {
		cli.Muted(output.NoEntriesMessage)
		return nil
	}
	cli.Print(output.EntriesTable(raw.Columns, raw.Rows))
	return nil
}
