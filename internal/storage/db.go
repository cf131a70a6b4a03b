// Package storage provides the database layer for timespent: a thin
// adapter over database/sql, schema introspection, and the entry and
// project repositories.
package storage

import (
	"database/sql"
	"os"

	"timespent/internal/errors"
	"timespent/internal/logging"
)

// DB wraps a SQLite connection to one datastore file.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens the database file at path. The file must already exist
// and be readable; timespent never creates a datastore.
func Open(path string) (*DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewConnectionError(path,
				"database file does not exist", errors.ErrDatabaseMissing)
		}
		return nil, errors.NewConnectionError(path, "cannot stat database file", err)
	}
	if info.IsDir() {
		return nil, errors.NewConnectionError(path,
			"database path is a directory", errors.ErrDatabaseMissing)
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, errors.NewConnectionError(path, "failed to open database", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.NewConnectionError(path, "failed to connect to database", err)
	}

	logging.DebugLog("database opened",
		logging.KeyDatabase, path,
		logging.KeyDriver, DriverVariant())

	return &DB{db: db, path: path}, nil
}

// Close closes the connection. Safe to call on a nil or already-closed
// handle.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	return err
}

// Path returns the datastore file path.
func (d *DB) Path() string {
	if d == nil {
		return ""
	}
	return d.path
}

// Result holds the outcome of a Select: ordered column names and rows
// of values. SQL NULL is represented as a nil value.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Select runs a read query and materializes all rows. Byte slices are
// converted to strings so rows survive the scan buffer reuse.
func (d *DB) Select(query string, args ...any) (*Result, error) {
	if d == nil || d.db == nil {
		return nil, errors.NewQueryError(query, "database is closed", errors.ErrDatabaseClosed)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.NewQueryError(query, "query failed", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.NewQueryError(query, "failed to read columns", err)
	}

	res := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errors.NewQueryError(query, "failed to scan row", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryError(query, "row iteration failed", err)
	}
	return res, nil
}

// Exec runs a statement with side effects (INSERT, PRAGMA).
func (d *DB) Exec(query string, args ...any) (sql.Result, error) {
	if d == nil || d.db == nil {
		return nil, errors.NewQueryError(query, "database is closed", errors.ErrDatabaseClosed)
	}
	res, err := d.db.Exec(query, args...)
	if err != nil {
		return nil, errors.NewQueryError(query, "exec failed", err)
	}
	return res, nil
}
