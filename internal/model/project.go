package model

// Project represents a row in the reference project directory table.
// The table is read-only from this tool's perspective.
type Project struct {
	ID        int64  `json:"id"`
	Directory string `json:"directory"`
}
