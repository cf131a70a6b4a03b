package storage

import (
	"timespent/internal/config"
	"timespent/internal/errors"
	"timespent/internal/logging"
)

// Session owns the two datastore handles for the life of a command
// invocation. Handles are opened lazily on first need and persist;
// closing happens only to force a reconnect or at shutdown.
type Session struct {
	cfg config.Config

	primary   *DB
	reference *DB
}

// NewSession creates a session over the configured datastore paths.
// No connection is opened until an Ensure call needs one.
func NewSession(cfg config.Config) *Session {
	return &Session{cfg: cfg}
}

// Config returns the session's configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}

// EnsurePrimary opens the primary datastore if it is not already open.
// No entry can be written while this fails.
func (s *Session) EnsurePrimary() error {
	if s.primary != nil {
		return nil
	}
	if s.cfg.Database == "" {
		return errors.NewConnectionError("", "no primary database configured",
			errors.ErrDatabaseMissing)
	}
	db, err := Open(config.ExpandPath(s.cfg.Database))
	if err != nil {
		return err
	}
	s.primary = db
	return nil
}

// EnsureReference opens the reference datastore if it is not already
// open. Callers may ignore the error: an unavailable reference only
// degrades project-directory lookups.
func (s *Session) EnsureReference() error {
	if s.reference != nil {
		return nil
	}
	if s.cfg.ReferenceDatabase == "" {
		return errors.Wrap(errors.ErrReferenceMissing, "no reference database configured")
	}
	db, err := Open(config.ExpandPath(s.cfg.ReferenceDatabase))
	if err != nil {
		logging.DebugLog("reference database unavailable",
			logging.KeyDatabase, s.cfg.ReferenceDatabase,
			logging.KeyError, err)
		return err
	}
	s.reference = db
	return nil
}

// Primary returns the primary handle, or nil before EnsurePrimary.
func (s *Session) Primary() *DB {
	return s.primary
}

// Reference returns the reference handle, or nil when unavailable.
func (s *Session) Reference() *DB {
	return s.reference
}

// ReconnectPrimary closes and reopens the primary handle, picking up a
// possibly-changed path.
func (s *Session) ReconnectPrimary() error {
	if s.primary != nil {
		s.primary.Close()
		s.primary = nil
	}
	return s.EnsurePrimary()
}

// ReconnectReference closes and reopens the reference handle.
func (s *Session) ReconnectReference() error {
	if s.reference != nil {
		s.reference.Close()
		s.reference = nil
	}
	return s.EnsureReference()
}

// Close releases both handles. Safe to call repeatedly.
func (s *Session) Close() error {
	var first error
	if s.primary != nil {
		if err := s.primary.Close(); err != nil && first == nil {
			first = err
		}
		s.primary = nil
	}
	if s.reference != nil {
		if err := s.reference.Close(); err != nil && first == nil {
			first = err
		}
		s.reference = nil
	}
	return first
}
