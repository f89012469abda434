package runtime

import (
	"context"

	"github.com/core-quic/pluginop/internal/errx"
)

// NativeEngine "compiles" a pre-built in-process module graph. It exists so
// the module container and dispatch engine can be exercised without a real
// WASM runtime wired in (spec §1 places the bytecode engine itself out of
// scope).
type NativeEngine struct{}

// NewNativeEngine returns a NativeEngine. Its Compile rejects every blob;
// CompileNative takes a *NativeModule directly.
func NewNativeEngine() *NativeEngine { return &NativeEngine{} }

// NativeBlob holds a reference to a pre-built NativeModule. Compile takes
// a []byte and does not accept it; nothing in this package reads it.
type NativeBlob struct {
	Module *NativeModule
}

// Compile always fails: the native double has no bytecode format of its
// own. Tests build a *NativeModule directly and pass it through
// CompileNative instead.
func (e *NativeEngine) Compile(blob []byte) (Module, error) {
	return nil, errx.With(ErrUnsupportedBlob, "NativeEngine has no blob format; use CompileNative")
}

// CompileNative is the native-double equivalent of Compile, taking the
// module directly rather than through the []byte blob indirection real
// engines use.
func (e *NativeEngine) CompileNative(m *NativeModule) (Module, error) {
	return m, nil
}

// NativeModule is an in-process stand-in for a compiled module: its
// exports are ordinary Go functions instead of WASM code.
type NativeModule struct {
	exports map[string]func(ctx context.Context, env uint32, imports Imports) (int64, error)
	order   []string
}

// NewNativeModule returns an empty NativeModule.
func NewNativeModule() *NativeModule {
	return &NativeModule{exports: make(map[string]func(context.Context, uint32, Imports) (int64, error))}
}

// Export registers fn under name. Registration order is preserved in
// ExportNames, matching a real module's declaration order.
func (m *NativeModule) Export(name string, fn func(ctx context.Context, env uint32, imports Imports) (int64, error)) *NativeModule {
	if _, exists := m.exports[name]; !exists {
		m.order = append(m.order, name)
	}
	m.exports[name] = fn
	return m
}

func (m *NativeModule) ExportNames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *NativeModule) Instantiate(imports Imports) (Instance, error) {
	return &nativeInstance{module: m, imports: imports}, nil
}

type nativeInstance struct {
	module  *NativeModule
	imports Imports
}

func (i *nativeInstance) Function(name string) (Function, bool) {
	fn, ok := i.module.exports[name]
	if !ok {
		return nil, false
	}
	return nativeFunction{fn: fn, imports: i.imports}, true
}

func (i *nativeInstance) Close() error { return nil }

type nativeFunction struct {
	fn      func(ctx context.Context, env uint32, imports Imports) (int64, error)
	imports Imports
}

func (f nativeFunction) Call(ctx context.Context, env uint32) (int64, error) {
	return f.fn(ctx, env, f.imports)
}
