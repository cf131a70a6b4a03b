package runtime

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timespent/internal/config"
	"timespent/internal/logging"
	"timespent/internal/output"
)

func TestNew(t *testing.T) {
	t.Setenv(config.EnvDatabase, "")
	t.Setenv(config.EnvReference, "")

	t.Run("defaults_without_config_file", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ConfigPath = filepath.Join(t.TempDir(), "absent.toml")

		ctx, err := New(opts)
		require.NoError(t, err)
		t.Cleanup(func() { ctx.Close() })

		assert.Equal(t, config.DefaultEntriesTable, ctx.Config.EntriesTable)
		assert.NotNil(t, ctx.Session)
		assert.NotNil(t, ctx.EntryRepo)
		assert.NotNil(t, ctx.ProjectRepo)
		assert.Equal(t, output.FormatCLI, ctx.Formatter.Format)
	})

	t.Run("request_id_assigned", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ConfigPath = filepath.Join(t.TempDir(), "absent.toml")

		ctx, err := New(opts)
		require.NoError(t, err)
		t.Cleanup(func() { ctx.Close() })

		assert.NotEmpty(t, logging.RequestIDFromContext(ctx.Ctx))

		other, err := New(opts)
		require.NoError(t, err)
		t.Cleanup(func() { other.Close() })
		assert.NotEqual(t,
			logging.RequestIDFromContext(ctx.Ctx),
			logging.RequestIDFromContext(other.Ctx))
	})

	t.Run("database_override", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ConfigPath = filepath.Join(t.TempDir(), "absent.toml")
		opts.Database = "/override/entries.db"
		opts.Reference = "/override/projects.db"

		ctx, err := New(opts)
		require.NoError(t, err)
		t.Cleanup(func() { ctx.Close() })

		assert.Equal(t, "/override/entries.db", ctx.Config.Database)
		assert.Equal(t, "/override/projects.db", ctx.Config.ReferenceDatabase)
	})

	t.Run("close_idempotent", func(t *testing.T) {
		opts := DefaultOptions()
		opts.ConfigPath = filepath.Join(t.TempDir(), "absent.toml")

		ctx, err := New(opts)
		require.NoError(t, err)
		assert.NoError(t, ctx.Close())
		assert.NoError(t, ctx.Close())
	})
}
