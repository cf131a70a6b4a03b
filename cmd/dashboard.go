package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"timespent/internal/tui"
)

var dashboardFlagRefresh int

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live terminal view of recent entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ctx.Session.EnsurePrimary(); err != nil {
			return err
		}
		return tui.Run(tui.DashboardConfig{
			EntryRepo:       ctx.EntryRepo,
			Limit:           ctx.Config.RecentLimit,
			RefreshInterval: time.Duration(dashboardFlagRefresh) * time.Second,
		})
	},
}

func init() {
	dashboardCmd.Flags().IntVar(&dashboardFlagRefresh, "refresh", 5,
		"Refresh interval in seconds")

	rootCmd.AddCommand(dashboardCmd)
}
