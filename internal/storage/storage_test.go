package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timespent/internal/config"
	tserrors "timespent/internal/errors"
	"timespent/internal/model"
)

const entriesSchema = `
CREATE TABLE zTimeSpent (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	DateDashed TEXT,
	Start TEXT,
	"End" TEXT,
	ProjectID INTEGER,
	ProjectDirectory TEXT,
	Description TEXT,
	Activity TEXT
);`

const projectsSchema = `
CREATE TABLE tenKprojects (
	ProjectID INTEGER PRIMARY KEY,
	ProjectDirectory TEXT
);`

// createFixture creates a database file with the given schema. Open
// never creates files, so fixtures are seeded through database/sql.
func createFixture(t *testing.T, name, schema string, inserts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	db, err := sql.Open(driverName, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(schema)
	require.NoError(t, err)
	for _, stmt := range inserts {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return path
}

func primaryFixture(t *testing.T, inserts ...string) string {
	t.Helper()
	return createFixture(t, "entries.db", entriesSchema, inserts...)
}

func newTestSession(t *testing.T, primary, reference string) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Database = primary
	cfg.ReferenceDatabase = reference
	s := NewSession(cfg)
	t.Cleanup(func() { s.Close() })
	return s
}

// =============================================================================
// DB Tests
// =============================================================================

func TestOpen(t *testing.T) {
	t.Run("missing_file", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "nope.db"))
		require.Error(t, err)
		assert.ErrorIs(t, err, tserrors.ErrDatabaseMissing)
	})

	t.Run("existing_file", func(t *testing.T) {
		path := primaryFixture(t)
		db, err := Open(path)
		require.NoError(t, err)
		assert.Equal(t, path, db.Path())
		assert.NoError(t, db.Close())
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Open(t.TempDir())
		require.Error(t, err)
	})

	t.Run("double_close", func(t *testing.T) {
		path := primaryFixture(t)
		db, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, db.Close())
		assert.NoError(t, db.Close())
	})

	t.Run("nil_close", func(t *testing.T) {
		var db *DB
		assert.NoError(t, db.Close())
	})
}

func TestSelect(t *testing.T) {
	path := primaryFixture(t,
		`INSERT INTO zTimeSpent (DateDashed, Start, "End", ProjectID, ProjectDirectory, Description, Activity)
		 VALUES ('2025-07-01', '09:00', '11:30', 42, '/proj/42', 'draft', 'G')`)
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	t.Run("rows_and_columns", func(t *testing.T) {
		res, err := db.Select("SELECT DateDashed, ProjectID FROM zTimeSpent")
		require.NoError(t, err)
		require.Len(t, res.Rows, 1)
		assert.Equal(t, []string{"DateDashed", "ProjectID"}, res.Columns)
		assert.Equal(t, "2025-07-01", res.Rows[0][0])
		assert.Equal(t, int64(42), res.Rows[0][1])
	})

	t.Run("null_becomes_nil", func(t *testing.T) {
		res, err := db.Select("SELECT NULL")
		require.NoError(t, err)
		require.Len(t, res.Rows, 1)
		assert.Nil(t, res.Rows[0][0])
	})

	t.Run("closed_handle", func(t *testing.T) {
		closed, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, closed.Close())
		_, err = closed.Select("SELECT 1")
		assert.Error(t, err)
	})
}

func TestExec(t *testing.T) {
	db, err := Open(primaryFixture(t))
	require.NoError(t, err)
	defer db.Close()

	t.Run("malformed_statement_query_error", func(t *testing.T) {
		_, err := db.Exec("INSERT INTO noSuchTable VALUES (1)")
		require.Error(t, err)
		assert.True(t, tserrors.IsQueryError(err))
	})

	t.Run("closed_handle_query_error", func(t *testing.T) {
		closed, err := Open(primaryFixture(t))
		require.NoError(t, err)
		require.NoError(t, closed.Close())
		_, err = closed.Exec("SELECT 1")
		require.Error(t, err)
		assert.True(t, tserrors.IsQueryError(err))
	})
}

// =============================================================================
// Schema Introspection Tests
// =============================================================================

func TestColumns(t *testing.T) {
	path := primaryFixture(t)
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	t.Run("excludes_id", func(t *testing.T) {
		cols, err := Columns(db, "zTimeSpent")
		require.NoError(t, err)
		assert.Equal(t, []string{
			"DateDashed", "Start", "End", "ProjectID",
			"ProjectDirectory", "Description", "Activity",
		}, cols)
	})

	t.Run("missing_table_empty", func(t *testing.T) {
		cols, err := Columns(db, "noSuchTable")
		require.NoError(t, err)
		assert.Empty(t, cols)
	})

	t.Run("invalid_table_name", func(t *testing.T) {
		_, err := Columns(db, "bad name; drop")
		assert.Error(t, err)
	})
}

func TestValidTableName(t *testing.T) {
	assert.True(t, ValidTableName("zTimeSpent"))
	assert.True(t, ValidTableName("tenKprojects"))
	assert.True(t, ValidTableName("_t2"))
	assert.False(t, ValidTableName(""))
	assert.False(t, ValidTableName("2fast"))
	assert.False(t, ValidTableName("a b"))
	assert.False(t, ValidTableName("t;drop"))
}

// =============================================================================
// Session Tests
// =============================================================================

func TestSession(t *testing.T) {
	t.Run("ensure_primary_idempotent", func(t *testing.T) {
		s := newTestSession(t, primaryFixture(t), "")
		require.NoError(t, s.EnsurePrimary())
		first := s.Primary()
		require.NoError(t, s.EnsurePrimary())
		assert.Same(t, first, s.Primary())
	})

	t.Run("primary_unconfigured", func(t *testing.T) {
		s := newTestSession(t, "", "")
		assert.Error(t, s.EnsurePrimary())
	})

	t.Run("reference_missing_degrades", func(t *testing.T) {
		s := newTestSession(t, primaryFixture(t), filepath.Join(t.TempDir(), "absent.db"))
		assert.Error(t, s.EnsureReference())
		assert.Nil(t, s.Reference())
		// primary unaffected
		assert.NoError(t, s.EnsurePrimary())
	})

	t.Run("reconnect", func(t *testing.T) {
		s := newTestSession(t, primaryFixture(t), "")
		require.NoError(t, s.EnsurePrimary())
		require.NoError(t, s.ReconnectPrimary())
		assert.NotNil(t, s.Primary())
	})

	t.Run("close_twice", func(t *testing.T) {
		s := newTestSession(t, primaryFixture(t), "")
		require.NoError(t, s.EnsurePrimary())
		assert.NoError(t, s.Close())
		assert.NoError(t, s.Close())
	})
}

// =============================================================================
// EntryRepo Tests
// =============================================================================

func TestEntryRepoLast(t *testing.T) {
	t.Run("empty_table_all_nil", func(t *testing.T) {
		repo := NewEntryRepo(newTestSession(t, primaryFixture(t), ""))
		last := repo.Last()
		require.NotNil(t, last)
		assert.Nil(t, last.Date)
		assert.Nil(t, last.End)
		assert.Nil(t, last.ProjectID)
		assert.Nil(t, last.ProjectDirectory)
	})

	t.Run("no_database_all_nil", func(t *testing.T) {
		repo := NewEntryRepo(newTestSession(t, "", ""))
		last := repo.Last()
		require.NotNil(t, last)
		assert.Nil(t, last.Date)
	})

	t.Run("single_row", func(t *testing.T) {
		path := primaryFixture(t,
			`INSERT INTO zTimeSpent (DateDashed, Start, "End", ProjectID, ProjectDirectory, Description, Activity)
			 VALUES ('2025-07-01', '09:00', '11:30', 42, '/proj/42', 'draft', 'G')`)
		repo := NewEntryRepo(newTestSession(t, path, ""))
		last := repo.Last()
		require.NotNil(t, last.Date)
		assert.Equal(t, "2025-07-01", *last.Date)
		require.NotNil(t, last.End)
		assert.Equal(t, "11:30", *last.End)
		require.NotNil(t, last.ProjectID)
		assert.Equal(t, int64(42), *last.ProjectID)
		require.NotNil(t, last.ProjectDirectory)
		assert.Equal(t, "/proj/42", *last.ProjectDirectory)
	})

	t.Run("most_recent_wins", func(t *testing.T) {
		path := primaryFixture(t,
			`INSERT INTO zTimeSpent (DateDashed, "End", ProjectID) VALUES ('2025-07-01', '11:30', 1)`,
			`INSERT INTO zTimeSpent (DateDashed, "End", ProjectID) VALUES ('2025-07-02', '15:00', 2)`)
		repo := NewEntryRepo(newTestSession(t, path, ""))
		last := repo.Last()
		require.NotNil(t, last.Date)
		assert.Equal(t, "2025-07-02", *last.Date)
		assert.Equal(t, int64(2), *last.ProjectID)
	})
}

func TestEntryRepoRecent(t *testing.T) {
	path := primaryFixture(t,
		`INSERT INTO zTimeSpent (DateDashed, Start, "End", ProjectID) VALUES ('2025-07-01', '09:00', '10:00', 1)`,
		`INSERT INTO zTimeSpent (DateDashed, Start, "End", ProjectID) VALUES ('2025-07-02', '10:00', '11:00', 2)`,
		`INSERT INTO zTimeSpent (DateDashed, Start, "End", ProjectID) VALUES ('2025-07-03', '11:00', '12:00', 3)`)
	repo := NewEntryRepo(newTestSession(t, path, ""))

	t.Run("zero_limit_empty", func(t *testing.T) {
		assert.Empty(t, repo.Recent(0))
	})

	t.Run("bounded_and_ordered", func(t *testing.T) {
		entries := repo.Recent(2)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(3), entries[0].ID)
		assert.Equal(t, int64(2), entries[1].ID)
	})

	t.Run("limit_beyond_rows", func(t *testing.T) {
		assert.Len(t, repo.Recent(50), 3)
	})

	t.Run("broken_database_empty", func(t *testing.T) {
		broken := NewEntryRepo(newTestSession(t, "", ""))
		assert.Empty(t, broken.Recent(10))
	})
}

func TestEntryRepoAdd(t *testing.T) {
	t.Run("sequential_ids", func(t *testing.T) {
		path := primaryFixture(t,
			`INSERT INTO zTimeSpent (DateDashed, ProjectID) VALUES ('2025-07-01', 1)`)
		repo := NewEntryRepo(newTestSession(t, path, ""))

		entry := &model.Entry{
			Date: "2025-07-02", Start: "09:00", End: "10:00",
			ProjectID: 2, ProjectDirectory: "/proj/2",
			Description: "work", Activity: "E",
		}
		id, err := repo.Add(entry.Fields())
		require.NoError(t, err)
		assert.Equal(t, int64(2), id)

		entries := repo.Recent(1)
		require.Len(t, entries, 1)
		assert.Equal(t, "2025-07-02", entries[0].Date)
		assert.Equal(t, int64(2), entries[0].ProjectID)
		assert.Equal(t, "E", entries[0].Activity)
	})

	t.Run("absent_field_null", func(t *testing.T) {
		repo := NewEntryRepo(newTestSession(t, primaryFixture(t), ""))
		id, err := repo.Add(map[string]any{
			model.ColDate:      "2025-07-01",
			model.ColProjectID: int64(7),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		raw := repo.RecentRaw(1)
		require.NotNil(t, raw)
		require.Len(t, raw.Rows, 1)
		for i, col := range raw.Columns {
			if col == model.ColDescription {
				assert.Nil(t, raw.Rows[0][i])
			}
		}
	})

	t.Run("missing_table_schema_error", func(t *testing.T) {
		s := newTestSession(t, primaryFixture(t), "")
		cfg := s.Config()
		cfg.EntriesTable = "noSuchTable"
		bad := NewEntryRepo(NewSession(cfg))
		t.Cleanup(func() { bad.session.Close() })

		_, err := bad.Add(map[string]any{model.ColDate: "2025-07-01"})
		require.Error(t, err)
	})

	t.Run("no_primary_connection_error", func(t *testing.T) {
		repo := NewEntryRepo(newTestSession(t, "", ""))
		_, err := repo.Add(map[string]any{model.ColDate: "2025-07-01"})
		assert.Error(t, err)
	})
}

// =============================================================================
// ProjectRepo Tests
// =============================================================================

func TestProjectRepoDirectory(t *testing.T) {
	reference := createFixture(t, "projects.db", projectsSchema,
		`INSERT INTO tenKprojects (ProjectID, ProjectDirectory) VALUES (42, '/proj/42-renamed')`)

	t.Run("found", func(t *testing.T) {
		repo := NewProjectRepo(newTestSession(t, primaryFixture(t), reference))
		dir, ok := repo.Directory(42)
		require.True(t, ok)
		assert.Equal(t, "/proj/42-renamed", dir)
	})

	t.Run("unknown_id", func(t *testing.T) {
		repo := NewProjectRepo(newTestSession(t, primaryFixture(t), reference))
		_, ok := repo.Directory(999)
		assert.False(t, ok)
	})

	t.Run("reference_unavailable", func(t *testing.T) {
		repo := NewProjectRepo(newTestSession(t, primaryFixture(t), ""))
		_, ok := repo.Directory(42)
		assert.False(t, ok)
	})

	t.Run("reference_file_absent", func(t *testing.T) {
		absent := filepath.Join(t.TempDir(), "absent.db")
		repo := NewProjectRepo(newTestSession(t, primaryFixture(t), absent))
		_, ok := repo.Directory(42)
		assert.False(t, ok)
	})
}
