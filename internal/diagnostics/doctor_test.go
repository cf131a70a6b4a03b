package diagnostics

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"timespent/internal/config"
	"timespent/internal/output"
)

func fixtureDB(t *testing.T, name, schema string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(schema)
	require.NoError(t, err)
	return path
}

func checkByName(r *Report, name string) *Check {
	for i := range r.Checks {
		if r.Checks[i].Name == name {
			return &r.Checks[i]
		}
	}
	return nil
}

func TestRun(t *testing.T) {
	t.Run("healthy_primary", func(t *testing.T) {
		cfg := config.Default()
		cfg.Database = fixtureDB(t, "entries.db",
			`CREATE TABLE zTimeSpent (id INTEGER PRIMARY KEY AUTOINCREMENT, DateDashed TEXT)`)

		r := Run(cfg, "test")
		require.NotNil(t, r)
		assert.NotEmpty(t, r.Driver)
		assert.NotEmpty(t, r.GoVersion)

		primary := checkByName(r, "primary database")
		require.NotNil(t, primary)
		assert.Equal(t, StatusOK, primary.Status)

		probe := checkByName(r, "primary connectivity")
		require.NotNil(t, probe)
		assert.Equal(t, StatusOK, probe.Status)
	})

	t.Run("reference_absent_still_completes", func(t *testing.T) {
		cfg := config.Default()
		cfg.Database = fixtureDB(t, "entries.db",
			`CREATE TABLE zTimeSpent (id INTEGER PRIMARY KEY AUTOINCREMENT)`)
		cfg.ReferenceDatabase = filepath.Join(t.TempDir(), "absent.db")

		r := Run(cfg, "test")

		ref := checkByName(r, "reference database")
		require.NotNil(t, ref)
		assert.Equal(t, StatusFail, ref.Status)

		found := false
		for _, rec := range r.Recommendations {
			if strings.Contains(rec, "reference_database") {
				found = true
			}
		}
		assert.True(t, found, "expected a reference-database recommendation")
	})

	t.Run("primary_missing_recommends_path_check", func(t *testing.T) {
		cfg := config.Default()
		cfg.Database = filepath.Join(t.TempDir(), "absent.db")

		r := Run(cfg, "test")

		primary := checkByName(r, "primary database")
		require.NotNil(t, primary)
		assert.Equal(t, StatusFail, primary.Status)

		joined := strings.Join(r.Recommendations, "\n")
		assert.Contains(t, joined, "Check the configured path")
	})

	t.Run("wrong_table_probe_fails_isolated", func(t *testing.T) {
		cfg := config.Default()
		cfg.Database = fixtureDB(t, "entries.db",
			`CREATE TABLE somethingElse (id INTEGER PRIMARY KEY)`)

		r := Run(cfg, "test")

		probe := checkByName(r, "primary connectivity")
		require.NotNil(t, probe)
		assert.Equal(t, StatusFail, probe.Status)
		// the rest of the report still rendered
		assert.NotNil(t, checkByName(r, "entries table"))
		assert.NotEmpty(t, r.Recommendations)
	})

	t.Run("unconfigured", func(t *testing.T) {
		r := Run(config.Default(), "test")
		joined := strings.Join(r.Recommendations, "\n")
		assert.Contains(t, joined, "Set 'database'")
	})
}

func TestRender(t *testing.T) {
	cfg := config.Default()
	r := Run(cfg, "test")

	buf := &bytes.Buffer{}
	f := output.NewFormatter()
	f.Writer = buf
	f.ColorMode = output.ColorNever

	Render(r, output.NewCLIFormatter(f))

	out := buf.String()
	assert.Contains(t, out, "timespent doctor")
	assert.Contains(t, out, "driver:")
	assert.Contains(t, out, "Recommendations")
}
