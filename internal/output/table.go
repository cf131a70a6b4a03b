package output

import (
	"fmt"
	"strings"
)

// NoEntriesMessage is shown when the entries table has nothing to render.
const NoEntriesMessage = "No entries to show."

// EntriesTable renders a pipe-separated table of entries: one header
// row of column names, then data rows oldest first. The input rows
// arrive most-recent-first from the repository and are reversed here.
// NULL values render as empty strings.
func EntriesTable(columns []string, rows [][]any) string {
	if len(columns) == 0 || len(rows) == 0 {
		return NoEntriesMessage
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(columns, " | "))
	sb.WriteString("\n")

	for i := len(rows) - 1; i >= 0; i-- {
		cells := make([]string, len(rows[i]))
		for j, v := range rows[i] {
			cells[j] = cell(v)
		}
		sb.WriteString(strings.Join(cells, " | "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func cell(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
