package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"timespent/internal/config"
)

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage timespent configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(configFilePath())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at %s", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(config.Sample()), 0644); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
		ctx.CLIFormatter().Success("Wrote " + path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func configFilePath() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Path()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config
	cli := ctx.CLIFormatter()
	cli.Title("Configuration")
	cli.Printf("config file:        %s\n", configFilePath())
	cli.Printf("database:           %s\n", orUnset(cfg.Database))
	cli.Printf("reference_database: %s\n", orUnset(cfg.ReferenceDatabase))
	cli.Printf("entries_table:      %s\n", cfg.EntriesTable)
	cli.Printf("projects_table:     %s\n", cfg.ProjectsTable)
	cli.Printf("recent_limit:       %d\n", cfg.RecentLimit)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
