// Package validate provides input validation for the timespent prompts.
package validate

import (
	"regexp"
	"strconv"
	"time"

	"timespent/internal/errors"
	"timespent/internal/model"
)

// dateRegex matches dash-separated calendar dates: four digits, two
// digits, two digits.
var dateRegex = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// clockRegex matches 24-hour HH:MM times with leading zeros.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Date validates a YYYY-MM-DD date string. The shape check alone would
// admit impossible dates like 2025-13-40, so the value must also parse
// as a real calendar date.
func Date(s string) error {
	if !dateRegex.MatchString(s) {
		return errors.NewFormatError("date", s,
			"Invalid date format",
			"Use YYYY-MM-DD, e.g. '2025-07-01'")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.NewFormatError("date", s,
			"Not a valid calendar date",
			"Use YYYY-MM-DD, e.g. '2025-07-01'")
	}
	return nil
}

// Clock validates a 24-hour HH:MM time string. Hours run 00-23 and
// minutes 00-59; a missing leading zero is rejected.
func Clock(s string) error {
	if !clockRegex.MatchString(s) {
		return errors.NewFormatError("time", s,
			"Invalid time format",
			"Use 24-hour HH:MM with leading zeros, e.g. '09:30'")
	}
	return nil
}

// ProjectID parses and validates a project identifier. Zero is
// rejected unconditionally, matching the original behavior even for
// blank input with no prior project.
func ProjectID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.NewFormatError("project", s,
			"Invalid project identifier",
			"Project identifiers are integers, e.g. '42'")
	}
	if id == 0 {
		return 0, errors.NewFormatError("project", s,
			"Project identifier must be non-zero",
			"Use 'timespent entries' to see recently used project identifiers")
	}
	return id, nil
}

// Activity validates an activity code against the closed set.
func Activity(s string) error {
	if !model.ValidActivity(s) {
		return errors.NewFormatError("activity", s,
			"Invalid activity code",
			"Use one of G (generative), E (editing), S (support), or none")
	}
	return nil
}
