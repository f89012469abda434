package module

import "errors"

var (
	ErrCompileFailed     = errors.New("module: compile failed")
	ErrInstantiateFailed = errors.New("module: instantiate failed")
	ErrMalformedExport   = errors.New("module: malformed export name")
	ErrInitFailed        = errors.New("module: init failed")
)
