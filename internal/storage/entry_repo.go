package storage

import (
	"fmt"
	"strconv"
	"strings"

	"timespent/internal/errors"
	"timespent/internal/logging"
	"timespent/internal/model"
)

// EntryRepo provides operations on the time-entries table. Reads
// degrade to empty results on failure so a broken display never blocks
// adding a new entry; only Add surfaces errors.
type EntryRepo struct {
	session *Session
}

// NewEntryRepo creates an entry repository over the session.
func NewEntryRepo(session *Session) *EntryRepo {
	return &EntryRepo{session: session}
}

func (r *EntryRepo) table() string {
	return r.session.Config().EntriesTable
}

// Last returns the most recent entry's default-seeding fields. An
// empty table, a missing connection, or a failed query all yield a
// record with every field nil; Last never returns an error.
func (r *EntryRepo) Last() *model.LastEntry {
	last := &model.LastEntry{}

	if err := r.session.EnsurePrimary(); err != nil {
		logging.DebugLog("last entry skipped", logging.KeyError, err)
		return last
	}
	r.session.EnsureReference() // establish both handles up front

	if !ValidTableName(r.table()) {
		return last
	}
	res, err := r.session.Primary().Select(
		fmt.Sprintf("SELECT * FROM %s ORDER BY id DESC LIMIT 1", r.table()))
	if err != nil || len(res.Rows) == 0 {
		if err != nil {
			logging.DebugLog("last entry query failed", logging.KeyError, err)
		}
		return last
	}

	row := res.Rows[0]
	for i, col := range res.Columns {
		switch col {
		case model.ColDate:
			last.Date = asString(row[i])
		case model.ColEnd:
			last.End = asString(row[i])
		case model.ColProjectID:
			last.ProjectID = asInt64(row[i])
		case model.ColProjectDirectory:
			last.ProjectDirectory = asString(row[i])
		}
	}
	return last
}

// Recent returns up to limit entries, most recent first. Failures and
// a non-positive limit yield an empty slice, never an error.
func (r *EntryRepo) Recent(limit int) []*model.Entry {
	res := r.RecentRaw(limit)
	if res == nil {
		return nil
	}

	entries := make([]*model.Entry, 0, len(res.Rows))
	for _, row := range res.Rows {
		e := &model.Entry{}
		for i, col := range res.Columns {
			switch col {
			case "id":
				if v := asInt64(row[i]); v != nil {
					e.ID = *v
				}
			case model.ColDate:
				e.Date = stringOr(row[i])
			case model.ColStart:
				e.Start = stringOr(row[i])
			case model.ColEnd:
				e.End = stringOr(row[i])
			case model.ColProjectID:
				if v := asInt64(row[i]); v != nil {
					e.ProjectID = *v
				}
			case model.ColProjectDirectory:
				e.ProjectDirectory = stringOr(row[i])
			case model.ColDescription:
				e.Description = stringOr(row[i])
			case model.ColActivity:
				e.Activity = stringOr(row[i])
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// RecentRaw returns the raw rows and column names of the most recent
// entries for dynamic-column rendering. Failures yield nil.
func (r *EntryRepo) RecentRaw(limit int) *Result {
	if limit <= 0 {
		return &Result{}
	}
	if err := r.session.EnsurePrimary(); err != nil {
		logging.DebugLog("recent entries skipped", logging.KeyError, err)
		return nil
	}
	if !ValidTableName(r.table()) {
		return nil
	}

	res, err := r.session.Primary().Select(
		fmt.Sprintf("SELECT * FROM %s ORDER BY id DESC LIMIT ?", r.table()), limit)
	if err != nil {
		logging.DebugLog("recent entries query failed", logging.KeyError, err)
		return nil
	}
	return res
}

// Add inserts a new entry built from fields, keyed by column name.
// The insert covers exactly the columns the introspector reports;
// a reported column absent from fields is written as NULL. Returns
// the identifier the database assigned.
func (r *EntryRepo) Add(fields map[string]any) (int64, error) {
	if err := r.session.EnsurePrimary(); err != nil {
		return 0, err
	}
	r.session.EnsureReference()

	cols, err := Columns(r.session.Primary(), r.table())
	if err != nil {
		return 0, err
	}
	if len(cols) == 0 {
		return 0, errors.NewSchemaError(r.table(),
			"entries table has no writable columns", errors.ErrNoColumns)
	}

	known := make(map[string]bool, len(cols))
	args := make([]any, 0, len(cols))
	quoted := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	for _, col := range cols {
		known[col] = true
		args = append(args, fields[col]) // absent -> nil -> NULL
		quoted = append(quoted, quoteIdent(col))
		placeholders = append(placeholders, "?")
	}
	for name := range fields {
		if !known[name] {
			logging.Warn("field has no matching column, skipped",
				logging.KeyTable, r.table(), "field", name)
		}
	}

	// Column names come from the live schema and may collide with SQL
	// keywords (the original table has an 'End' column), so quote them.
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.table(), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))

	res, err := r.session.Primary().Exec(query, args...)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to insert entry into %s", r.table())
	}

	// database/sql reports the rowid from the connection that ran the
	// insert, so this stays correct without an extra query.
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "insert succeeded but id is unknown")
	}

	logging.LogOperation("add_entry",
		logging.KeyTable, r.table(),
		logging.KeyEntryID, id)

	return id, nil
}

func asString(v any) *string {
	switch s := v.(type) {
	case string:
		return &s
	case int64:
		str := strconv.FormatInt(s, 10)
		return &str
	}
	return nil
}

func asInt64(v any) *int64 {
	switch n := v.(type) {
	case int64:
		return &n
	case string:
		if parsed, err := strconv.ParseInt(n, 10, 64); err == nil {
			return &parsed
		}
	}
	return nil
}

func stringOr(v any) string {
	if s := asString(v); s != nil {
		return *s
	}
	return ""
}
