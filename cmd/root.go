// Package cmd provides the CLI commands for timespent.
package cmd

import (
	"fmt"
	goruntime "runtime"

	"github.com/spf13/cobra"

	"timespent/internal/output"
	"timespent/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat string
	flagColor  string
	flagDebug  bool
	flagConfig string
	flagDB     string
	flagRefDB  string
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "timespent",
	Short: "Log time-tracking entries into a local SQLite datastore",
	Long: `Timespent logs time-tracking entries (project, date, start/end time,
activity, description) into a local SQLite database, pre-filling each
prompt from your most recent entry and validating project identifiers
against a reference database.

Examples:
  timespent add
  timespent add --date yesterday --project 42
  timespent entries --limit 10
  timespent doctor`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "help" {
			return nil
		}

		var format output.Format
		switch flagFormat {
		case "plain":
			format = output.FormatPlain
		default:
			format = output.FormatCLI
		}

		var colorMode output.ColorMode
		switch flagColor {
		case "always":
			colorMode = output.ColorAlways
		case "never":
			colorMode = output.ColorNever
		default:
			colorMode = output.ColorAuto
		}

		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.ConfigPath = flagConfig
		opts.Database = flagDB
		opts.Reference = flagRefDB

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}
		// Commands log through the invocation's request-id context.
		cmd.SetContext(ctx.Ctx)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show recent entries.
		return runEntries(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Path to config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "",
		"Primary database path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagRefDB, "refdb", "",
		"Reference database path (overrides config)")

	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("timespent %s\n", Version)
		fmt.Printf("  commit:  %s\n", Commit)
		fmt.Printf("  built:   %s\n", BuildTime)
		fmt.Printf("  go:      %s\n", goruntime.Version())
	},
}
