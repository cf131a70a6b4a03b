// Package prompt implements the interactive field collection for the
// add-entry flow. Each prompt shows its default in brackets, accepts
// blank input as the default, and re-prompts on malformed input a
// bounded number of times before giving up with the format error.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"timespent/internal/errors"
	"timespent/internal/model"
	"timespent/internal/validate"
)

// maxAttempts bounds how often a malformed field is re-prompted.
const maxAttempts = 3

// Prompter reads field values interactively. Input and output are
// injected so tests can script a session.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// read shows the label (with default, when present) and returns the
// trimmed input line. Blank input returns the default.
func (p *Prompter) read(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", errors.Wrap(err, "failed to read input")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// retry runs collect until it succeeds or attempts are exhausted,
// echoing the format error between tries.
func (p *Prompter) retry(collect func() (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value, err := collect()
		if err == nil {
			return value, nil
		}
		lastErr = err
		fe, ok := errors.AsFormatError(err)
		if !ok {
			return "", err
		}
		fmt.Fprintf(p.out, "%s\n", fe.Error())
		if fe.Suggestion != "" {
			fmt.Fprintf(p.out, "  %s\n", fe.Suggestion)
		}
	}
	return "", lastErr
}

// NormalizeDate resolves input to a YYYY-MM-DD date: strict values
// pass through unchanged and anything else is offered to the
// natural-language parser, so phrases like "yesterday" normalize to a
// dashed date. The second return is false when neither form matches.
// Both the interactive prompt and the flag path use this one helper.
func NormalizeDate(value string) (string, bool) {
	if validate.Date(value) == nil {
		return value, true
	}
	if value == "" {
		return "", false
	}
	cfg := &dateparser.Configuration{CurrentTime: time.Now()}
	parsed, err := dateparser.Parse(cfg, value)
	if err != nil {
		return "", false
	}
	return parsed.Time.Format("2006-01-02"), true
}

// Date prompts for a YYYY-MM-DD date.
func (p *Prompter) Date(label, def string) (string, error) {
	return p.retry(func() (string, error) {
		value, err := p.read(label, def)
		if err != nil {
			return "", err
		}
		if normalized, ok := NormalizeDate(value); ok {
			if normalized != value {
				fmt.Fprintf(p.out, "  using %s\n", normalized)
			}
			return normalized, nil
		}
		return "", errors.NewFormatError("date", value,
			"Invalid date format",
			"Use YYYY-MM-DD, e.g. '2025-07-01', or a phrase like 'yesterday'")
	})
}

// Clock prompts for a 24-hour HH:MM time.
func (p *Prompter) Clock(label, def string) (string, error) {
	return p.retry(func() (string, error) {
		value, err := p.read(label, def)
		if err != nil {
			return "", err
		}
		if err := validate.Clock(value); err != nil {
			return "", err
		}
		return value, nil
	})
}

// ProjectID prompts for a non-zero integer project identifier.
func (p *Prompter) ProjectID(label string, def *int64) (int64, error) {
	defStr := ""
	if def != nil {
		defStr = strconv.FormatInt(*def, 10)
	}
	value, err := p.retry(func() (string, error) {
		value, err := p.read(label, defStr)
		if err != nil {
			return "", err
		}
		if _, err := validate.ProjectID(value); err != nil {
			return "", err
		}
		return value, nil
	})
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// Activity prompts for an activity code from the closed set. Single
// letters are matched case-insensitively.
func (p *Prompter) Activity(label, def string) (string, error) {
	if def == "" {
		def = model.ActivityNone
	}
	options := strings.Join(model.Activities, "/")
	return p.retry(func() (string, error) {
		value, err := p.read(fmt.Sprintf("%s (%s)", label, options), def)
		if err != nil {
			return "", err
		}
		for _, a := range model.Activities {
			if strings.EqualFold(value, a) {
				return a, nil
			}
		}
		if err := validate.Activity(value); err != nil {
			return "", err
		}
		return value, nil
	})
}

// Text prompts for a free-text value, accepted as-is. When required,
// blank input with no default is rejected.
func (p *Prompter) Text(label, def string, required bool) (string, error) {
	return p.retry(func() (string, error) {
		value, err := p.read(label, def)
		if err != nil {
			return "", err
		}
		if required && value == "" {
			return "", errors.NewFormatError(label, "",
				"A value is required",
				"This field has no default; enter a value")
		}
		return value, nil
	})
}
