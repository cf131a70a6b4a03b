package storage

import (
	"fmt"

	"timespent/internal/logging"
)

// ProjectRepo reads the reference table mapping project identifiers to
// canonical project directories. The table is never written.
type ProjectRepo struct {
	session *Session
}

// NewProjectRepo creates a project repository over the session.
func NewProjectRepo(session *Session) *ProjectRepo {
	return &ProjectRepo{session: session}
}

func (r *ProjectRepo) table() string {
	return r.session.Config().ProjectsTable
}

// Directory looks up the canonical directory for a project identifier.
// The second return is false when the reference datastore is
// unavailable, the identifier is unknown, or the query fails.
func (r *ProjectRepo) Directory(projectID int64) (string, bool) {
	if err := r.session.EnsureReference(); err != nil {
		return "", false
	}
	if !ValidTableName(r.table()) {
		return "", false
	}

	res, err := r.session.Reference().Select(
		fmt.Sprintf("SELECT ProjectDirectory FROM %s WHERE ProjectID = ? LIMIT 1", r.table()),
		projectID)
	if err != nil {
		logging.DebugLog("project lookup failed",
			logging.KeyProject, projectID,
			logging.KeyError, err)
		return "", false
	}
	if len(res.Rows) == 0 || len(res.Rows[0]) == 0 {
		return "", false
	}

	dir := stringOr(res.Rows[0][0])
	if dir == "" {
		return "", false
	}
	return dir, true
}
