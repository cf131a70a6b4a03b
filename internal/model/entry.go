// Package model defines the records stored in the timespent databases.
package model

// Activity codes classify what kind of work an entry covers.
const (
	ActivityGenerative = "G"
	ActivityEditing    = "E"
	ActivitySupport    = "S"
	ActivityNone       = "none"
)

// Activities lists the accepted activity codes in prompt order.
var Activities = []string{ActivityGenerative, ActivityEditing, ActivitySupport, ActivityNone}

// ValidActivity reports whether code is one of the accepted activity codes.
func ValidActivity(code string) bool {
	for _, a := range Activities {
		if code == a {
			return true
		}
	}
	return false
}

// Entry represents one logged time-tracking row.
type Entry struct {
	ID               int64  `json:"id"`
	Date             string `json:"date"`       // YYYY-MM-DD
	Start            string `json:"start"`      // HH:MM, 24-hour
	End              string `json:"end"`        // HH:MM, 24-hour
	ProjectID        int64  `json:"project_id"`
	ProjectDirectory string `json:"project_directory"`
	Description      string `json:"description"`
	Activity         string `json:"activity"`
}

// LastEntry holds the fields of the most recent entry that seed prompt
// defaults. Every field is nullable: an empty table or a failed read
// yields the zero value with all pointers nil.
type LastEntry struct {
	Date             *string
	End              *string
	ProjectID        *int64
	ProjectDirectory *string
}

// Column names of the entries table as created by the original schema.
// The insert path never hard-codes this list; it is here for the typed
// reconciliation against what the introspector reports.
const (
	ColDate             = "DateDashed"
	ColStart            = "Start"
	ColEnd              = "End"
	ColProjectID        = "ProjectID"
	ColProjectDirectory = "ProjectDirectory"
	ColDescription      = "Description"
	ColActivity         = "Activity"
)

// Fields maps the entry onto its table column names for insertion.
// The id column is assigned by the database and never included.
func (e *Entry) Fields() map[string]any {
	return map[string]any{
		ColDate:             e.Date,
		ColStart:            e.Start,
		ColEnd:              e.End,
		ColProjectID:        e.ProjectID,
		ColProjectDirectory: e.ProjectDirectory,
		ColDescription:      e.Description,
		ColActivity:         e.Activity,
	}
}
