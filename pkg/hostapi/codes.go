// Package hostapi implements the Host Capability API: the permission-gated
// surface a loaded module's host imports are bound to (spec §4.7). Every
// method here has the runtime.HostFunc shape and is meant to be wired into
// a runtime.Imports table by a caller assembling a module's import set.
package hostapi

// Code is the small integer every capability call returns. Zero is success;
// the rest are stable, part of the external interface (spec §4.7: "Codes
// are stable and part of the external interface.").
type Code int32

const (
	Success             Code = 0
	APICallError        Code = -1
	BadType             Code = -2
	ShortInternalBuffer Code = -3
	SerializeError      Code = -4
)
