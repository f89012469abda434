// Package dispatch implements the dispatch engine: the registry of loaded
// modules, the before/replace/after anchor chain, the frame stack, and the
// default-implementation registry (spec §4.6).
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/core-quic/pluginop/internal/errx"
	"github.com/core-quic/pluginop/pkg/bufferreg"
	"github.com/core-quic/pluginop/pkg/logging"
	"github.com/core-quic/pluginop/pkg/module"
	"github.com/core-quic/pluginop/pkg/opaquestore"
	"github.com/core-quic/pluginop/pkg/operation"
	"github.com/core-quic/pluginop/pkg/pluginval"
	"github.com/core-quic/pluginop/pkg/runtime"
)

// DefaultFunc is the host-native fallback body for an operation with no
// installed Replace module.
type DefaultFunc func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)

// Handler is the handler state of spec §3: the insertion-ordered module
// list, the shared byte-buffer registry and opaque store, the default
// registry, and the frame stack. The core is single-threaded per
// connection (spec §5); mu guards only the bookkeeping slices against
// accidental concurrent use, not a concurrency model of its own.
type Handler struct {
	mu       sync.Mutex
	modules  []*module.Module
	defaults map[operation.Operation]DefaultFunc

	Buffers *bufferreg.Registry
	Opaque  *opaquestore.Store

	// Emitter receives dispatch-lifecycle events (module load/unload,
	// before/body/after/error, timer arm/fire/cancel) when non-nil. A
	// Handler built with a zero Handler{} or via NewHandler has it unset;
	// callers that want an audit trail assign it before first use.
	Emitter *logging.Emitter

	config      Config
	frames      []*Frame
	nextFrameID uint32

	timers timerSet
}

// NewHandler returns an empty Handler configured by cfg.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		defaults: make(map[operation.Operation]DefaultFunc),
		Buffers:  bufferreg.New(),
		Opaque:   opaquestore.New(),
		config:   cfg,
		timers:   newTimerSet(cfg.TimerResolution),
	}
}

// Config returns the HandlerConfig this Handler was built with, so
// collaborators bound to it (e.g. pkg/hostapi's Host) can read bounds like
// MaxEncodedValueBytes without importing pkg/config themselves.
func (h *Handler) Config() Config {
	return h.config
}

// AddModule installs m at the end of the insertion-ordered module list and
// emits its load/initialize lifecycle events.
func (h *Handler) AddModule(m *module.Module) {
	h.mu.Lock()
	h.modules = append(h.modules, m)
	h.mu.Unlock()

	h.emitLifecycle(logging.EventModuleLoaded, m)
	if m.Env.Initialized {
		h.emitLifecycle(logging.EventModuleInitialized, m)
	}
}

// RemoveModule closes and drops the module named name, emitting
// EventModuleUnloaded. It reports false if no module by that name is
// installed.
func (h *Handler) RemoveModule(name string) (bool, error) {
	h.mu.Lock()
	idx := -1
	for i, m := range h.modules {
		if m.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		h.mu.Unlock()
		return false, nil
	}
	m := h.modules[idx]
	h.modules = append(h.modules[:idx:idx], h.modules[idx+1:]...)
	h.mu.Unlock()

	err := m.Close()
	h.emitLifecycle(logging.EventModuleUnloaded, m)
	return true, err
}

func (h *Handler) emitLifecycle(eventType string, m *module.Module) {
	if h.Emitter == nil {
		return
	}
	_ = h.Emitter.Emit(eventType, fmt.Sprintf("%s: %s", eventType, m.Name), m.Name, nil,
		&logging.ModuleLifecycleData{Module: m.Name, Permissions: uint8(m.Env.Permissions)})
}

// Modules returns the insertion-ordered module list.
func (h *Handler) Modules() []*module.Module {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*module.Module, len(h.modules))
	copy(out, h.modules)
	return out
}

// SetDefault registers fn as the fallback body for op.
func (h *Handler) SetDefault(op operation.Operation, fn DefaultFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.defaults[op] = fn
}

// enabled reports whether m may be dispatched into for op: initialized
// modules always qualify; uninitialized modules qualify only for
// always-enabled operations (spec §4.5: "State machine").
func enabled(m *module.Module, op operation.Operation) bool {
	return m.Env.Initialized || op.AlwaysEnabled()
}

// Provides reports whether any installed, currently-eligible module
// defines (op, anchor).
func (h *Handler) Provides(op operation.Operation, anchor operation.Anchor) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range h.modules {
		if enabled(m, op) && m.Provides(op, anchor) {
			return true
		}
	}
	return false
}

// CurrentFrame returns the top of the dispatch frame stack, for host-API
// calls (get_input, save_output, ...) to address.
func (h *Handler) CurrentFrame() (*Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return nil, false
	}
	return h.frames[len(h.frames)-1], true
}

// FrameByID looks up a frame anywhere on the stack by its id, used by
// host-API closures that were bound to a specific env handle.
func (h *Handler) FrameByID(id uint32) (*Frame, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.frames) - 1; i >= 0; i-- {
		if h.frames[i].ID == id {
			return h.frames[i], true
		}
	}
	return nil, false
}

// Call implements spec §4.6's call(op, args) -> [value] | Err.
func (h *Handler) Call(ctx context.Context, op operation.Operation, args []pluginval.Value) ([]pluginval.Value, error) {
	h.mu.Lock()
	if len(h.frames) >= h.config.ReentrancyDepthCap {
		h.mu.Unlock()
		return nil, errx.With(ErrReentrancyDepthExceeded, ": depth %d >= cap %d", len(h.frames), h.config.ReentrancyDepthCap)
	}
	h.nextFrameID++
	frame := &Frame{ID: h.nextFrameID, TraceID: uuid.NewString(), Args: args}
	h.frames = append(h.frames, frame)
	modules := make([]*module.Module, len(h.modules))
	copy(modules, h.modules)
	defaults := h.defaults
	h.mu.Unlock()

	defer func() {
		h.Buffers.RevokeFrame(uint64(frame.ID))
		h.mu.Lock()
		h.frames = h.frames[:len(h.frames)-1]
		h.mu.Unlock()
	}()

	for _, m := range modules {
		if !enabled(m, op) {
			continue
		}
		if fn, ok := m.Function(op, operation.Before); ok {
			start := time.Now()
			err := callAnchor(ctx, fn, frame.ID)
			h.emitDispatch(operation.Before, m.Name, op, time.Since(start), err)
			if err != nil {
				return nil, errx.With(ErrBeforeHookFailed, " [trace %s]: module %q op %v: %w", frame.TraceID, m.Name, op, err)
			}
		}
	}

	bodyRan := false
	for _, m := range modules {
		if !enabled(m, op) {
			continue
		}
		if fn, ok := m.Function(op, operation.Replace); ok {
			start := time.Now()
			err := callAnchor(ctx, fn, frame.ID)
			h.emitDispatch(operation.Replace, m.Name, op, time.Since(start), err)
			if err != nil {
				return nil, errx.With(ErrBodyFailed, " [trace %s]: module %q op %v: %w", frame.TraceID, m.Name, op, err)
			}
			bodyRan = true
			break
		}
	}
	if !bodyRan {
		if def, ok := defaults[op]; ok {
			start := time.Now()
			out, err := def(ctx, frame.Args)
			h.emitDispatch(operation.Replace, "", op, time.Since(start), err)
			if err != nil {
				return nil, errx.With(ErrBodyFailed, " [trace %s]: default op %v: %w", frame.TraceID, op, err)
			}
			frame.Output = out
			bodyRan = true
		}
	}
	if !bodyRan {
		return nil, errx.With(ErrNoDefault, ": %v", op)
	}

	for _, m := range modules {
		if !enabled(m, op) {
			continue
		}
		if fn, ok := m.Function(op, operation.After); ok {
			start := time.Now()
			err := callAnchor(ctx, fn, frame.ID)
			h.emitDispatch(operation.After, m.Name, op, time.Since(start), err)
			if err != nil {
				return nil, errx.With(ErrAfterHookFailed, " [trace %s]: module %q op %v: %w", frame.TraceID, m.Name, op, err)
			}
		}
	}

	return frame.Output, nil
}

// emitDispatch reports one module contribution at anchor for op: a
// dispatch_error event on failure, a before/body/after event on success.
// moduleName is "" for the host-native default body.
func (h *Handler) emitDispatch(anchor operation.Anchor, moduleName string, op operation.Operation, dur time.Duration, err error) {
	if h.Emitter == nil {
		return
	}
	if err != nil {
		_ = h.Emitter.Emit(logging.EventDispatchError, fmt.Sprintf("%s %s failed", anchor, op), moduleName, nil,
			&logging.DispatchErrorData{Module: moduleName, Operation: op.String(), Anchor: anchor.String(), Reason: err.Error()})
		return
	}
	eventType := logging.EventDispatchBody
	switch anchor {
	case operation.Before:
		eventType = logging.EventDispatchBefore
	case operation.After:
		eventType = logging.EventDispatchAfter
	}
	_ = h.Emitter.Emit(eventType, fmt.Sprintf("%s %s", anchor, op), moduleName, nil,
		&logging.DispatchData{Module: moduleName, Operation: op.String(), Anchor: anchor.String(), DurationUS: dur.Microseconds()})
}

// callAnchor invokes fn with env set to the frame id, translating any
// non-zero return code into ErrOperationError (spec §6: "return is 0 on
// success or a negative implementation-defined error code").
func callAnchor(ctx context.Context, fn runtime.Function, frameID uint32) error {
	rc, err := fn.Call(ctx, frameID)
	if err != nil {
		return err
	}
	if rc != 0 {
		return errx.With(ErrOperationError, ": returned %d", rc)
	}
	return nil
}
