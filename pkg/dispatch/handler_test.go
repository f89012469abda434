package dispatch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/core-quic/pluginop/pkg/dispatch"
	"github.com/core-quic/pluginop/pkg/logging"
	"github.com/core-quic/pluginop/pkg/module"
	"github.com/core-quic/pluginop/pkg/operation"
	"github.com/core-quic/pluginop/pkg/pluginval"
	"github.com/core-quic/pluginop/pkg/runtime"
)

// captureSink records every emitted event in order, for assertions.
type captureSink struct {
	mu     sync.Mutex
	events []*logging.Event
}

func (s *captureSink) Write(e *logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.events = append(s.events, &cp)
	return nil
}

func (s *captureSink) Close() error { return nil }

func (s *captureSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.events))
	for i, e := range s.events {
		out[i] = e.EventType
	}
	return out
}

func rc0(_ context.Context, _ uint32, _ runtime.Imports) (int64, error) { return 0, nil }

func loadNative(t *testing.T, name string, nm *runtime.NativeModule) *module.Module {
	t.Helper()
	m, err := module.LoadCompiled(context.Background(), name, nm, runtime.Imports{}, 1)
	require.NoError(t, err)
	return m
}

func TestCall_BeforeReplaceAfterOrdering(t *testing.T) {
	var order []string

	nmA := runtime.NewNativeModule()
	nmA.Export("init", rc0)
	nmA.Export("pre_test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		order = append(order, "A-before")
		return 0, nil
	})
	nmA.Export("post_test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		order = append(order, "A-after")
		return 0, nil
	})

	nmB := runtime.NewNativeModule()
	nmB.Export("init", rc0)
	nmB.Export("pre_test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		order = append(order, "B-before")
		return 0, nil
	})
	nmB.Export("test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		order = append(order, "B-body")
		return 0, nil
	})

	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.AddModule(loadNative(t, "A", nmA))
	h.AddModule(loadNative(t, "B", nmB))

	_, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"A-before", "B-before", "B-body", "A-after"}, order)
}

func TestCall_FirstReplaceWinsTieBreak(t *testing.T) {
	var ran []string

	nmA := runtime.NewNativeModule()
	nmA.Export("init", rc0)
	nmA.Export("test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		ran = append(ran, "A")
		return 0, nil
	})
	nmB := runtime.NewNativeModule()
	nmB.Export("init", rc0)
	nmB.Export("test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		ran = append(ran, "B")
		return 0, nil
	})

	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.AddModule(loadNative(t, "A", nmA))
	h.AddModule(loadNative(t, "B", nmB))

	_, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ran)
}

func TestCall_NoDefaultIsError(t *testing.T) {
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	_, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.ErrorIs(t, err, dispatch.ErrNoDefault)
}

func TestCall_FallsBackToDefault(t *testing.T) {
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.SetDefault(operation.Operation{Kind: operation.KindTest}, func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		return []pluginval.Value{pluginval.NewI32(9)}, nil
	})
	out, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.NoError(t, err)
	require.Len(t, out, 1)
	v, err := out[0].TryI32()
	require.NoError(t, err)
	assert.Equal(t, int32(9), v)
}

func TestCall_BeforeHookErrorIsFatal(t *testing.T) {
	nm := runtime.NewNativeModule()
	nm.Export("init", rc0)
	nm.Export("pre_test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		return -5, nil
	})
	nm.Export("test", rc0)

	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.AddModule(loadNative(t, "A", nm))

	_, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.ErrorIs(t, err, dispatch.ErrBeforeHookFailed)
	require.ErrorIs(t, err, dispatch.ErrOperationError)
	assert.Contains(t, err.Error(), "trace ")
}

func TestCall_ReentrancyDepthCapped(t *testing.T) {
	h := dispatch.NewHandler(dispatch.Config{ReentrancyDepthCap: 2})

	var recurse DefaultRecurse
	recurse = func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		return h.Call(ctx, operation.Operation{Kind: operation.KindTest}, args)
	}
	h.SetDefault(operation.Operation{Kind: operation.KindTest}, func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		return recurse(ctx, args)
	})

	_, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.ErrorIs(t, err, dispatch.ErrReentrancyDepthExceeded)
}

type DefaultRecurse func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)

func TestTick_FiresDueTimerAndDisarms(t *testing.T) {
	fired := false
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.SetDefault(operation.Operation{Kind: operation.KindOnPluginTimeout, Param: 2}, func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		fired = true
		return nil, nil
	})

	now := time.Unix(1700000000, 0)
	h.SetTimer("mod-a", 2, now)

	errs := h.Tick(context.Background(), now)
	assert.Empty(t, errs)
	assert.True(t, fired)

	fired = false
	errs = h.Tick(context.Background(), now.Add(time.Second))
	assert.Empty(t, errs)
	assert.False(t, fired, "timer must not re-fire after disarming")
}

func TestCancelTimer_PreventsFire(t *testing.T) {
	fired := false
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.SetDefault(operation.Operation{Kind: operation.KindOnPluginTimeout, Param: 5}, func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		fired = true
		return nil, nil
	})

	now := time.Unix(1700000000, 0)
	h.SetTimer("mod-a", 5, now.Add(time.Second))
	h.CancelTimer("mod-a", 5)

	h.Tick(context.Background(), now.Add(2*time.Second))
	assert.False(t, fired)
}

func TestCancelTimer_UnknownIDIsNoOp(t *testing.T) {
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	assert.NotPanics(t, func() { h.CancelTimer("mod-a", 999) })
}

func TestAddModule_EmitsLoadedAndInitialized(t *testing.T) {
	sink := &captureSink{}
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.Emitter = logging.NewEmitter(logging.EmitterConfig{AgentSystem: "test"}, sink)

	nm := runtime.NewNativeModule()
	nm.Export("init", rc0)
	h.AddModule(loadNative(t, "A", nm))

	assert.Equal(t, []string{logging.EventModuleLoaded, logging.EventModuleInitialized}, sink.types())
}

func TestRemoveModule_ClosesAndEmitsUnloaded(t *testing.T) {
	sink := &captureSink{}
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.Emitter = logging.NewEmitter(logging.EmitterConfig{AgentSystem: "test"}, sink)

	nm := runtime.NewNativeModule()
	nm.Export("init", rc0)
	h.AddModule(loadNative(t, "A", nm))

	removed, err := h.RemoveModule("A")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, h.Modules())
	assert.Equal(t, []string{logging.EventModuleLoaded, logging.EventModuleInitialized, logging.EventModuleUnloaded}, sink.types())
}

func TestRemoveModule_UnknownNameIsNoOp(t *testing.T) {
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	removed, err := h.RemoveModule("missing")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCall_EmitsDispatchEventsForEachContribution(t *testing.T) {
	sink := &captureSink{}
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.Emitter = logging.NewEmitter(logging.EmitterConfig{AgentSystem: "test"}, sink)

	nm := runtime.NewNativeModule()
	nm.Export("init", rc0)
	nm.Export("pre_test", rc0)
	nm.Export("test", rc0)
	nm.Export("post_test", rc0)
	h.AddModule(loadNative(t, "A", nm))

	_, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.NoError(t, err)

	types := sink.types()
	assert.Contains(t, types, logging.EventDispatchBefore)
	assert.Contains(t, types, logging.EventDispatchBody)
	assert.Contains(t, types, logging.EventDispatchAfter)
}

func TestCall_EmitsDispatchErrorOnHookFailure(t *testing.T) {
	sink := &captureSink{}
	h := dispatch.NewHandler(dispatch.DefaultConfig())
	h.Emitter = logging.NewEmitter(logging.EmitterConfig{AgentSystem: "test"}, sink)

	nm := runtime.NewNativeModule()
	nm.Export("init", rc0)
	nm.Export("pre_test", func(ctx context.Context, env uint32, imports runtime.Imports) (int64, error) {
		return -1, nil
	})
	nm.Export("test", rc0)
	h.AddModule(loadNative(t, "A", nm))

	_, err := h.Call(context.Background(), operation.Operation{Kind: operation.KindTest}, nil)
	require.Error(t, err)
	assert.Contains(t, sink.types(), logging.EventDispatchError)
}

func TestSetTimer_QuantizesToResolution(t *testing.T) {
	cfg := dispatch.DefaultConfig()
	cfg.TimerResolution = 10 * time.Millisecond
	h := dispatch.NewHandler(cfg)

	fired := false
	h.SetDefault(operation.Operation{Kind: operation.KindOnPluginTimeout, Param: 1}, func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		fired = true
		return nil, nil
	})

	base := time.Unix(1700000000, 0)
	h.SetTimer("mod-a", 1, base.Add(3*time.Millisecond))

	// Rounded up to the next 10ms boundary, so a tick before it must not fire.
	errs := h.Tick(context.Background(), base.Add(9*time.Millisecond))
	assert.Empty(t, errs)
	assert.False(t, fired)

	errs = h.Tick(context.Background(), base.Add(10*time.Millisecond))
	assert.Empty(t, errs)
	assert.True(t, fired)
}

func TestTick_CancelWithinSameTickIsHonored(t *testing.T) {
	h := dispatch.NewHandler(dispatch.DefaultConfig())

	var fired2 bool
	h.SetDefault(operation.Operation{Kind: operation.KindOnPluginTimeout, Param: 1}, func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		h.CancelTimer("mod-a", 2)
		return nil, nil
	})
	h.SetDefault(operation.Operation{Kind: operation.KindOnPluginTimeout, Param: 2}, func(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
		fired2 = true
		return nil, nil
	})

	now := time.Unix(1700000000, 0)
	h.SetTimer("mod-a", 1, now)
	h.SetTimer("mod-a", 2, now)

	errs := h.Tick(context.Background(), now)
	assert.Empty(t, errs)
	assert.False(t, fired2, "timer 2 must not fire once timer 1's handler cancels it within the same Tick")
}
