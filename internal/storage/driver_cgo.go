//go:build cgo && !purego

package storage

import (
	_ "github.com/mattn/go-sqlite3"
)

// driverName selects the cgo SQLite driver when cgo is available.
const driverName = "sqlite3"

// DriverVariant names the active SQLite driver for diagnostics.
func DriverVariant() string {
	return "mattn/go-sqlite3 (cgo)"
}
