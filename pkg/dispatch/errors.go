package dispatch

import "errors"

var (
	// ErrNoDefault is returned when an operation has neither a module body
	// nor a registered default implementation (spec §4.6, §7).
	ErrNoDefault = errors.New("dispatch: no default implementation")
	// ErrBeforeHookFailed wraps a fatal error from a Before hook.
	ErrBeforeHookFailed = errors.New("dispatch: before hook failed")
	// ErrBodyFailed wraps a fatal error from the operation body.
	ErrBodyFailed = errors.New("dispatch: body failed")
	// ErrAfterHookFailed wraps a fatal error from an After hook.
	ErrAfterHookFailed = errors.New("dispatch: after hook failed")
	// ErrOperationError is returned when a module function returns a
	// non-zero result code (spec §7: OperationError(n<0)).
	ErrOperationError = errors.New("dispatch: operation error")
	// ErrReentrancyDepthExceeded is returned when call_proto_op recursion
	// exceeds the handler's configured cap.
	ErrReentrancyDepthExceeded = errors.New("dispatch: reentrancy depth exceeded")
)
