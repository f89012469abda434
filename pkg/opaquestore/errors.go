package opaquestore

import "errors"

// ErrNotFound is returned by Get for an unset (module, tag) pair.
var ErrNotFound = errors.New("opaquestore: not found")
