// Package module implements the module container: loading a bytecode blob,
// instantiating it against a host-import table, enumerating its exports
// into a per-operation anchor table, and running its Init export
// (spec §4.5).
package module

import (
	"context"

	"github.com/google/uuid"

	"github.com/core-quic/pluginop/internal/errx"
	"github.com/core-quic/pluginop/pkg/operation"
	"github.com/core-quic/pluginop/pkg/runtime"
)

// anchorRow holds the up-to-three functions (Before, Replace, After)
// installed for one Operation.
type anchorRow [3]runtime.Function

// Env is a module's permission grant and initialization state.
type Env struct {
	Permissions Permission
	Initialized bool
}

// Module is a loaded, instantiated bytecode module: its callable exports,
// resolved into the anchor table, plus its environment (spec §3: "Module").
type Module struct {
	Name       string
	InstanceID string // minted once at load time, for correlating this instance's events across a restart under the same Name
	instance   runtime.Instance
	anchors    map[operation.Operation]*anchorRow
	Env        Env
}

// Provides reports whether this module installs a function at (op, anchor).
func (m *Module) Provides(op operation.Operation, anchor operation.Anchor) bool {
	row, ok := m.anchors[op]
	if !ok {
		return false
	}
	return row[anchor] != nil
}

// Function returns the function installed at (op, anchor), if any.
func (m *Module) Function(op operation.Operation, anchor operation.Anchor) (runtime.Function, bool) {
	row, ok := m.anchors[op]
	if !ok {
		return nil, false
	}
	fn := row[anchor]
	return fn, fn != nil
}

// Close releases the underlying instance's resources.
func (m *Module) Close() error {
	return m.instance.Close()
}

// Load implements spec §4.5's load(blob, store, imports) -> Module | Err:
// compile, instantiate, enumerate exports into the anchor table, grant
// default permissions, and run Init if the module defines one.
//
// engine and blob stand in for "compile blob with the bytecode engine"; a
// caller using the native test double compiles ahead of time and passes
// the resulting runtime.Module directly via LoadCompiled.
func Load(ctx context.Context, name string, engine runtime.Engine, blob []byte, imports runtime.Imports, nonce uint32) (*Module, error) {
	compiled, err := engine.Compile(blob)
	if err != nil {
		return nil, errx.With(ErrCompileFailed, ": module %q: %w", name, err)
	}
	return LoadCompiled(ctx, name, compiled, imports, nonce)
}

// LoadCompiled runs steps 2-5 of spec §4.5 against an already-compiled
// runtime.Module.
func LoadCompiled(ctx context.Context, name string, compiled runtime.Module, imports runtime.Imports, nonce uint32) (*Module, error) {
	instance, err := compiled.Instantiate(imports)
	if err != nil {
		return nil, errx.With(ErrInstantiateFailed, ": module %q: %w", name, err)
	}

	m := &Module{
		Name:       name,
		InstanceID: uuid.NewString(),
		instance:   instance,
		anchors:    make(map[operation.Operation]*anchorRow),
		Env:        Env{Permissions: DefaultPermissions},
	}

	for _, exportName := range compiled.ExportNames() {
		op, anchor, err := operation.FromName(exportName)
		if err != nil {
			_ = instance.Close()
			return nil, errx.With(ErrMalformedExport, ": module %q export %q: %w", name, exportName, err)
		}
		fn, ok := instance.Function(exportName)
		if !ok {
			continue
		}
		row, ok := m.anchors[op]
		if !ok {
			row = &anchorRow{}
			m.anchors[op] = row
		}
		row[anchor] = fn
	}

	if fn, ok := m.Function(operation.Operation{Kind: operation.KindInit}, operation.Replace); ok {
		rc, err := fn.Call(ctx, nonce)
		if err != nil {
			_ = instance.Close()
			return nil, errx.With(ErrInitFailed, ": module %q: %w", name, err)
		}
		if rc != 0 {
			_ = instance.Close()
			return nil, errx.With(ErrInitFailed, ": module %q: init returned %d", name, rc)
		}
	}
	m.Env.Initialized = true

	return m, nil
}
