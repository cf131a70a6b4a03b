// Package diagnostics builds the self-check report behind the doctor
// command. Every probe is isolated: one failing check records its
// failure and the rest of the report still completes.
package diagnostics

import (
	"fmt"
	"os"
	"runtime"

	"timespent/internal/config"
	"timespent/internal/storage"
)

// Status classifies a single check outcome.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is one probe result.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Report is the full diagnostics outcome.
type Report struct {
	Version         string
	GoVersion       string
	Driver          string
	Checks          []Check
	Recommendations []string
}

// Run executes all probes against the configuration and assembles the
// report. It opens its own short-lived connections and never mutates
// either datastore.
func Run(cfg config.Config, version string) *Report {
	r := &Report{
		Version:   version,
		GoVersion: runtime.Version(),
		Driver:    storage.DriverVariant(),
	}

	primaryOK := r.checkPath("primary database", cfg.Database)
	referenceOK := r.checkPath("reference database", cfg.ReferenceDatabase)

	r.add("entries table", StatusOK, cfg.EntriesTable)
	r.add("projects table", StatusOK, cfg.ProjectsTable)
	if !storage.ValidTableName(cfg.EntriesTable) {
		r.add("entries table name", StatusFail, "not a valid identifier")
	}
	if !storage.ValidTableName(cfg.ProjectsTable) {
		r.add("projects table name", StatusFail, "not a valid identifier")
	}

	probeOK := false
	if primaryOK {
		probeOK = r.probe("primary connectivity", cfg.Database, cfg.EntriesTable)
	}
	if referenceOK {
		r.probe("reference connectivity", cfg.ReferenceDatabase, cfg.ProjectsTable)
	}

	// Rule-based recommendations driven by which checks failed.
	switch {
	case cfg.Database == "":
		r.recommend("Set 'database' in " + config.Path() + " to the file holding your entries.")
	case !primaryOK:
		r.recommend("The primary database file was not found. Check the configured path; timespent never creates the file.")
	case !probeOK:
		r.recommend("The primary database opened but the entries table could not be counted. Verify 'entries_table' matches the schema.")
	default:
		r.recommend("Primary storage looks healthy.")
	}
	if cfg.ReferenceDatabase == "" || !referenceOK {
		r.recommend("Project-directory lookups are degraded. Install or point 'reference_database' at the projects datastore.")
	}
	if probeOK && referenceOK {
		r.recommend("If prompts misbehave, re-run with --debug and check the structured log output.")
	}

	return r
}

func (r *Report) add(name string, status Status, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Status: status, Detail: detail})
}

func (r *Report) recommend(text string) {
	r.Recommendations = append(r.Recommendations, text)
}

// checkPath records configuration and existence of a datastore path.
func (r *Report) checkPath(name, path string) bool {
	if path == "" {
		r.add(name, StatusWarn, "not configured")
		return false
	}
	expanded := config.ExpandPath(path)
	detail := path
	if expanded != path {
		detail = fmt.Sprintf("%s -> %s", path, expanded)
	}
	info, err := os.Stat(expanded)
	if err != nil || info.IsDir() {
		r.add(name, StatusFail, detail+" (missing)")
		return false
	}
	r.add(name, StatusOK, detail)
	return true
}

// probe opens the datastore and counts rows in table. Failures are
// recorded as checks, never returned.
func (r *Report) probe(name, path, table string) bool {
	db, err := storage.Open(config.ExpandPath(path))
	if err != nil {
		r.add(name, StatusFail, fmt.Sprintf("open failed: %v", err))
		return false
	}
	defer db.Close()

	if !storage.ValidTableName(table) {
		r.add(name, StatusFail, "invalid table name")
		return false
	}
	res, err := db.Select(fmt.Sprintf("SELECT COUNT(*) FROM %s", table))
	if err != nil {
		r.add(name, StatusFail, fmt.Sprintf("count failed: %v", err))
		return false
	}
	count := int64(0)
	if len(res.Rows) > 0 && len(res.Rows[0]) > 0 {
		if n, ok := res.Rows[0][0].(int64); ok {
			count = n
		}
	}
	r.add(name, StatusOK, fmt.Sprintf("%d rows in %s", count, table))
	return true
}
