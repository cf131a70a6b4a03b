package diagnostics

import (
	"fmt"

	"timespent/internal/output"
)

// Render writes the report as human-facing text.
func Render(r *Report, cli *output.CLIFormatter) {
	cli.Title("timespent doctor")
	cli.Printf("version:    %s\n", r.Version)
	cli.Printf("go:         %s\n", r.GoVersion)
	cli.Printf("driver:     %s\n", r.Driver)
	cli.Println()

	for _, c := range r.Checks {
		line := fmt.Sprintf("%s: %s", c.Name, c.Detail)
		switch c.Status {
		case StatusOK:
			cli.Success(line)
		case StatusWarn:
			cli.Warning(line)
		case StatusFail:
			cli.Error(line)
		}
	}

	if len(r.Recommendations) > 0 {
		cli.Println()
		cli.Title("Recommendations")
		for _, rec := range r.Recommendations {
			cli.Printf("  - %s\n", rec)
		}
	}
}
