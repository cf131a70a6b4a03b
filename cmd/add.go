package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"timespent/internal/errors"
	"timespent/internal/logging"
	"timespent/internal/model"
	"timespent/internal/output"
	"timespent/internal/prompt"
	"timespent/internal/validate"
)

// Add command flags. Each pre-answers the corresponding prompt; the
// value is still validated the same way typed input would be.
var (
	addFlagDate        string
	addFlagStart       string
	addFlagEnd         string
	addFlagProject     int64
	addFlagDir         string
	addFlagDescription string
	addFlagActivity    string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new time entry interactively",
	Long: `Log a new time entry. Each field is prompted in order (date, start
time, end time, project, project directory, description, activity) with
defaults derived from your most recent entry. Entering a project
identifier looks up its canonical directory in the reference database.

Examples:
  timespent add
  timespent add --date 2025-07-01 --start 09:00
  timespent add --project 42 --activity G`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addFlagDate, "date", "", "Entry date (YYYY-MM-DD or natural language)")
	addCmd.Flags().StringVar(&addFlagStart, "start", "", "Start time (HH:MM)")
	addCmd.Flags().StringVar(&addFlagEnd, "end", "", "End time (HH:MM)")
	addCmd.Flags().Int64VarP(&addFlagProject, "project", "p", 0, "Project identifier")
	addCmd.Flags().StringVar(&addFlagDir, "dir", "", "Project directory")
	addCmd.Flags().StringVarP(&addFlagDescription, "description", "d", "", "Description")
	addCmd.Flags().StringVarP(&addFlagActivity, "activity", "a", "", "Activity code: G, E, S, none")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	cli := ctx.CLIFormatter()
	log := logging.LoggerFromContext(cmd.Context())

	// The primary connection gates the whole flow: fail before any
	// prompting so no input is collected that cannot be written.
	if err := ctx.Session.EnsurePrimary(); err != nil {
		return err
	}
	log.Debug("add entry flow started", logging.KeyDatabase, ctx.Config.Database)
	ctx.Session.EnsureReference()

	// Recent entries for context.
	raw := ctx.EntryRepo.RecentRaw(ctx.Config.RecentLimit)
	if raw != nil {
		cli.Title("Recent entries")
		cli.Print(output.EntriesTable(raw.Columns, raw.Rows))
		cli.Println()
	}

	last := ctx.EntryRepo.Last()

	p := prompt.New(os.Stdin, ctx.Formatter.Writer)
	entry := &model.Entry{}
	var err error

	// Date: last entry's date, or today.
	dateDefault := time.Now().Format("2006-01-02")
	if last.Date != nil {
		dateDefault = *last.Date
	}
	entry.Date, err = answerOrPrompt(addFlagDate, normalizeDate, func() (string, error) {
		return p.Date("Date", dateDefault)
	})
	if err != nil {
		return err
	}

	// Start time: last entry's end time.
	startDefault := ""
	if last.End != nil {
		startDefault = *last.End
	}
	entry.Start, err = answerOrPrompt(addFlagStart, validateClock, func() (string, error) {
		return p.Clock("Start time", startDefault)
	})
	if err != nil {
		return err
	}

	entry.End, err = answerOrPrompt(addFlagEnd, validateClock, func() (string, error) {
		return p.Clock("End time", "")
	})
	if err != nil {
		return err
	}

	// Project: last entry's project identifier.
	if addFlagProject != 0 {
		entry.ProjectID = addFlagProject
	} else {
		entry.ProjectID, err = p.ProjectID("Project", last.ProjectID)
		if err != nil {
			return err
		}
	}

	// Project directory: the reference lookup wins over the last
	// entry's stored directory; with neither, the field is required.
	dirDefault := ""
	if dir, ok := ctx.ProjectRepo.Directory(entry.ProjectID); ok {
		dirDefault = dir
	} else if last.ProjectDirectory != nil {
		dirDefault = *last.ProjectDirectory
	}
	if addFlagDir != "" {
		entry.ProjectDirectory = addFlagDir
	} else {
		entry.ProjectDirectory, err = p.Text("Project directory", dirDefault, dirDefault == "")
		if err != nil {
			return err
		}
	}

	if addFlagDescription != "" {
		entry.Description = addFlagDescription
	} else {
		entry.Description, err = p.Text("Description", "", false)
		if err != nil {
			return err
		}
	}

	entry.Activity, err = answerOrPrompt(addFlagActivity, func(v string) (string, error) {
		if verr := validate.Activity(v); verr != nil {
			return "", verr
		}
		return v, nil
	}, func() (string, error) {
		return p.Activity("Activity", model.ActivityNone)
	})
	if err != nil {
		return err
	}

	id, err := ctx.EntryRepo.Add(entry.Fields())
	if err != nil {
		// Echo the collected values so a schema or insert failure
		// does not silently discard the user's input.
		cli.Error(err.Error())
		if s := errors.GetSuggestion(err); s != "" {
			cli.Muted(s)
		}
		cli.Println()
		cli.Muted("Collected values (not saved):")
		cli.Printf("  %s %s-%s project %d (%s) %s [%s]\n",
			entry.Date, entry.Start, entry.End, entry.ProjectID,
			entry.ProjectDirectory, entry.Description, entry.Activity)
		return fmt.Errorf("entry not saved")
	}

	log.Debug("entry saved", logging.KeyEntryID, id, logging.KeyProject, entry.ProjectID)
	cli.Success(fmt.Sprintf("Entry %d saved: %s %s-%s project %d [%s]",
		id, entry.Date, entry.Start, entry.End, entry.ProjectID, entry.Activity))
	return nil
}

// answerOrPrompt uses the flag value when set, otherwise prompts.
func answerOrPrompt(flagValue string, check func(string) (string, error), ask func() (string, error)) (string, error) {
	if flagValue != "" {
		return check(flagValue)
	}
	return ask()
}

func validateClock(v string) (string, error) {
	if err := validate.Clock(v); err != nil {
		return "", err
	}
	return v, nil
}

// normalizeDate accepts a strict dashed date or a natural-language
// phrase, sharing the interactive date prompt's normalization.
func normalizeDate(v string) (string, error) {
	if normalized, ok := prompt.NormalizeDate(v); ok {
		return normalized, nil
	}
	return "", errors.NewFormatError("date", v,
		"Invalid date format",
		"Use YYYY-MM-DD, e.g. '2025-07-01', or a phrase like 'yesterday'")
}
