// Timespent - log time-tracking entries into a local SQLite datastore.
package main

import (
	"fmt"
	"os"

	"timespent/cmd"
	"timespent/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if suggestion := errors.GetSuggestion(err); suggestion != "" {
			fmt.Fprintf(os.Stderr, "%s\n", suggestion)
		} else if generic := errors.GetCategorySuggestion(err); generic != "" {
			fmt.Fprintf(os.Stderr, "%s\n", generic)
		}
		os.Exit(1)
	}
}
