package storage

import (
	"fmt"
	"regexp"
	"strings"

	"timespent/internal/errors"
	"timespent/internal/logging"
)

// identRegex restricts table names to plain identifiers. Table names
// come from configuration and are interpolated into PRAGMA statements,
// which cannot be parameterized.
var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidTableName reports whether name is usable as a table identifier.
func ValidTableName(name string) bool {
	return identRegex.MatchString(name)
}

// quoteIdent double-quotes an identifier for use in generated SQL,
// escaping embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Columns returns the writable column names of table in order,
// excluding the synthetic primary-key column 'id' and any hidden or
// generated columns. A missing table yields an empty slice; callers
// decide whether that is fatal.
func Columns(db *DB, table string) ([]string, error) {
	if !ValidTableName(table) {
		return nil, errors.NewSchemaError(table, "invalid table name", nil)
	}

	// table_xinfo includes a 'hidden' flag table_info lacks: 0 for
	// normal columns, non-zero for hidden and generated ones.
	res, err := db.Select(fmt.Sprintf("PRAGMA table_xinfo(%s)", table))
	if err != nil {
		return nil, errors.NewSchemaError(table, "failed to introspect table", err)
	}

	idx := func(name string) int {
		for i, c := range res.Columns {
			if c == name {
				return i
			}
		}
		return -1
	}
	nameIdx, hiddenIdx := idx("name"), idx("hidden")
	if nameIdx < 0 {
		return nil, errors.NewSchemaError(table, "unexpected table_xinfo shape", nil)
	}

	var cols []string
	for _, row := range res.Rows {
		name, ok := row[nameIdx].(string)
		if !ok {
			continue
		}
		if name == "id" {
			continue
		}
		if hiddenIdx >= 0 {
			if hidden, ok := row[hiddenIdx].(int64); ok && hidden != 0 {
				continue
			}
		}
		cols = append(cols, name)
	}

	logging.LogOperation("columns",
		logging.KeyTable, table,
		logging.KeyCount, len(cols))

	return cols, nil
}
