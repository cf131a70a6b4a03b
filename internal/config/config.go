// Package config provides the TOML configuration for timespent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const (
	// AppName is the application name used for config directories.
	AppName = "timespent"
	// ConfigFile is the name of the TOML configuration file.
	ConfigFile = "config.toml"

	// DefaultEntriesTable is the primary table holding time entries.
	DefaultEntriesTable = "zTimeSpent"
	// DefaultProjectsTable is the reference table mapping project ids
	// to canonical project directories.
	DefaultProjectsTable = "tenKprojects"
	// DefaultRecentLimit bounds the recent-entries display.
	DefaultRecentLimit = 20
)

// Environment variable overrides, checked after the config file.
const (
	EnvDatabase  = "TIMESPENT_DATABASE"
	EnvReference = "TIMESPENT_REFERENCE"
)

// Config holds all recognized configuration options.
type Config struct {
	// Database is the path to the primary datastore file. The file
	// must already exist; timespent never creates it.
	Database string `toml:"database"`
	// ReferenceDatabase is the path to the optional reference
	// datastore. Absence degrades project-directory lookups.
	ReferenceDatabase string `toml:"reference_database"`
	// EntriesTable is the primary table name.
	EntriesTable string `toml:"entries_table"`
	// ProjectsTable is the reference table name.
	ProjectsTable string `toml:"projects_table"`
	// RecentLimit bounds how many recent entries are displayed.
	RecentLimit int `toml:"recent_limit"`
}

// Default returns a Config with the documented defaults. Database
// paths have no sensible default and stay empty.
func Default() Config {
	return Config{
		EntriesTable:  DefaultEntriesTable,
		ProjectsTable: DefaultProjectsTable,
		RecentLimit:   DefaultRecentLimit,
	}
}

// Path returns the config file path following the XDG spec.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFile)
}

// Load reads the config file at path, layering it over defaults and
// then applying environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

// LoadOrDefault reads the config file if it exists; a missing file
// yields the defaults (plus environment overrides) without error.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		cfg.applyEnv()
		cfg.normalize()
		return cfg, nil
	}
	return Load(path)
}

// Save writes the config as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvReference); v != "" {
		c.ReferenceDatabase = v
	}
}

func (c *Config) normalize() {
	if c.EntriesTable == "" {
		c.EntriesTable = DefaultEntriesTable
	}
	if c.ProjectsTable == "" {
		c.ProjectsTable = DefaultProjectsTable
	}
	if c.RecentLimit <= 0 {
		c.RecentLimit = DefaultRecentLimit
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Sample returns a commented sample config for 'timespent config init'.
func Sample() string {
	return `# timespent configuration

# Path to the primary database holding time entries.
# The file must already exist; timespent never creates it.
database = "~/timespent.db"

# Optional reference database with canonical project directories.
# Leave unset to skip project lookups.
reference_database = "~/projects.db"

# Table names. Change only if your schema differs.
entries_table = "` + DefaultEntriesTable + `"
projects_table = "` + DefaultProjectsTable + `"

# How many recent entries to show before each new entry.
recent_limit = 20
`
}
