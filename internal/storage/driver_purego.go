//go:build !cgo || purego

package storage

import (
	_ "modernc.org/sqlite"
)

// driverName selects the pure Go SQLite driver when cgo is unavailable
// or the purego tag is set.
const driverName = "sqlite"

// DriverVariant names the active SQLite driver for diagnostics.
func DriverVariant() string {
	return "modernc.org/sqlite (pure Go)"
}
