package storedb

import "errors"

// ErrOpenFailed is returned when the underlying sqlite file cannot be
// opened.
var ErrOpenFailed = errors.New("storedb: open failed")

// ErrMigrationFailed is returned when a schema migration step, or the
// bookkeeping around it, fails.
var ErrMigrationFailed = errors.New("storedb: migration failed")
