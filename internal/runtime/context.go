// Package runtime provides the application runtime context for timespent.
package runtime

import (
	"context"
	"log/slog"

	"timespent/internal/config"
	"timespent/internal/logging"
	"timespent/internal/output"
	"timespent/internal/storage"
)

// Context holds everything a command invocation needs: the session
// owning the datastore handles, the repositories, and the formatter.
// Ctx carries the request id identifying this invocation in the logs.
type Context struct {
	Ctx       context.Context
	Config    config.Config
	Session   *storage.Session
	Formatter *output.Formatter

	EntryRepo   *storage.EntryRepo
	ProjectRepo *storage.ProjectRepo

	Debug bool
}

// Options configures the runtime context.
type Options struct {
	ConfigPath string // empty uses the XDG default
	Database   string // overrides the configured primary path
	Reference  string // overrides the configured reference path
	Format     output.Format
	ColorMode  output.ColorMode
	Debug      bool
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context. Connections are not opened here;
// the session opens them lazily on first need.
func New(opts Options) (*Context, error) {
	if opts.Debug {
		logging.InitDebug()
	} else {
		logging.Init(logging.Config{Level: slog.LevelWarn})
	}

	// One request id per invocation; every log line for this run can
	// be correlated through it.
	reqCtx := logging.NewRequestContext()

	path := opts.ConfigPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if opts.Database != "" {
		cfg.Database = opts.Database
	}
	if opts.Reference != "" {
		cfg.ReferenceDatabase = opts.Reference
	}

	session := storage.NewSession(cfg)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	logging.DebugContext(reqCtx, "runtime context initialized",
		logging.KeyRequestID, logging.RequestIDFromContext(reqCtx),
		logging.KeyDatabase, cfg.Database)

	return &Context{
		Ctx:         reqCtx,
		Config:      cfg,
		Session:     session,
		Formatter:   formatter,
		EntryRepo:   storage.NewEntryRepo(session),
		ProjectRepo: storage.NewProjectRepo(session),
		Debug:       opts.Debug,
	}, nil
}

// Close releases the session's datastore handles.
func (c *Context) Close() error {
	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}
