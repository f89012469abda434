package bufferreg

import "errors"

var (
	// ErrUnknownTag is returned when a tag is unissued, already revoked, or forged.
	ErrUnknownTag = errors.New("bufferreg: unknown tag")
	// ErrReadTooLarge is returned when a read exceeds max_read_len or the region.
	ErrReadTooLarge = errors.New("bufferreg: read exceeds bound")
	// ErrWriteTooLarge is returned when a write exceeds max_write_len or the region.
	ErrWriteTooLarge = errors.New("bufferreg: write exceeds bound")
)
