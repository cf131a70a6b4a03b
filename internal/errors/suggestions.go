package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrDatabaseMissing:  "timespent never creates the database. Check the 'database' path in your config, or create the file first.",
	ErrDatabaseClosed:   "The connection was closed. Re-run the command to reconnect.",
	ErrTableNotFound:    "Run 'timespent doctor' to see which tables the configured databases contain.",
	ErrNoColumns:        "The entries table exposes no writable columns. Verify the table name with 'timespent doctor'.",
	ErrReferenceMissing: "Project lookups are degraded. Set 'reference_database' in your config or check that the file exists.",
	ErrInvalidDate:      "Use YYYY-MM-DD, e.g. '2025-07-01', or a phrase like 'yesterday'. Leave blank to accept the default.",
	ErrInvalidTime:      "Use 24-hour HH:MM with leading zeros, e.g. '09:30'. Leave blank to accept the default.",
	ErrInvalidProjectID: "Project identifiers are non-zero integers. Use 'timespent entries' to see recent ones.",
	ErrInvalidActivity:  "Use one of G (generative), E (editing), S (support), or none.",
	ErrValueRequired:    "This field has no default; enter a value.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}

	if fe, ok := AsFormatError(err); ok && fe.Suggestion != "" {
		return fe.Suggestion
	}

	return ""
}

// GetCategorySuggestion returns a generic suggestion based on error category.
func GetCategorySuggestion(err error) string {
	switch {
	case IsFormatError(err):
		return "Check your input and try again. Use --help for usage information."
	case IsConnectionError(err):
		return "Check the configured database paths. 'timespent doctor' shows what the tool can see."
	case IsSchemaError(err):
		return "The database schema does not match expectations. 'timespent doctor' lists the configured tables."
	case IsQueryError(err):
		return "A read failed and was skipped. Re-run with --debug for details."
	}
	return ""
}
