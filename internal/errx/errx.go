// Package errx provides the two error-construction helpers used across
// this module: wrapping a sentinel with a formatted suffix, and wrapping a
// sentinel around an arbitrary cause.
package errx

import "fmt"

// With returns an error that wraps sentinel and whose message is sentinel's
// message followed by the formatted suffix. errors.Is(err, sentinel) holds.
func With(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w"+format, append([]any{sentinel}, args...)...)
}

// Wrap returns an error that wraps both sentinel and err, reporting err's
// message after sentinel's. errors.Is holds for both.
func Wrap(sentinel error, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}
