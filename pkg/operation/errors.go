package operation

import "errors"

var (
	// ErrMalformedParameter is returned when a parameterized family's
	// trailing hex parameter cannot be parsed. The reference implementation
	// panics here; this module rejects the module at load time instead.
	ErrMalformedParameter = errors.New("operation: malformed hex parameter")

	// ErrNameTooLong is returned when an unrecognized export name (after
	// anchor-prefix stripping) exceeds the 32-byte Other buffer.
	ErrNameTooLong = errors.New("operation: name exceeds 32 bytes")
)
