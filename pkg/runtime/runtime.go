// Package runtime defines the black-box bytecode instantiator boundary
// (spec §1: "the compiled-bytecode execution engine itself... we treat it
// as a black-box instantiator exposing linear memory and typed function
// calls"). It names the shape a real engine (e.g. a WebAssembly runtime)
// must expose; it does not implement one.
package runtime

import "context"

// Imports is the host-import table a Module is instantiated against
// (spec §4.5 step 2). Keys are the import names the bytecode format
// expects; values are the host functions bound to them.
type Imports map[string]HostFunc

// HostFunc is a host capability function bound into a module's import
// table. payload stands in for the "(ptr, len) pair into the module's
// linear memory" convention spec §6 describes; since the bytecode engine
// itself is out of scope, it is carried here as a plain byte slice rather
// than a real memory offset. result is the bytes to hand back across the
// boundary (empty for calls with no out-value); code is the stable
// capability-call status (spec §4.7: 0 success, else APICallError/BadType/
// ShortInternalBuffer/SerializeError).
type HostFunc func(ctx context.Context, env uint32, payload []byte) (result []byte, code int32, err error)

// Engine compiles a bytecode blob into a Module. A real implementation
// wraps a WebAssembly runtime; it is never instantiated by this package.
type Engine interface {
	Compile(blob []byte) (Module, error)
}

// Module is a compiled bytecode module: it knows its own export names but
// is not yet runnable until Instantiate binds it to a host-import table.
type Module interface {
	// ExportNames lists every function export, in module-declaration order.
	ExportNames() []string
	Instantiate(imports Imports) (Instance, error)
}

// Instance is an instantiated module: linear memory plus callable exports.
type Instance interface {
	// Function looks up an export by name.
	Function(name string) (Function, bool)
	// Close releases any resources (linear memory, OS threads) the
	// instance holds.
	Close() error
}

// Function is a single exported function, always of signature
// `(i32 env) -> i64` (spec §4.5: "Module binary format"): the return value
// is 0 on success, or a negative implementation-defined error code.
type Function interface {
	Call(ctx context.Context, env uint32) (int64, error)
}
