package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/core-quic/pluginop/pkg/dispatch"
	"github.com/core-quic/pluginop/pkg/logging"
	"github.com/core-quic/pluginop/pkg/module"
	"github.com/core-quic/pluginop/pkg/runtime"
)

// buildEmitter wires up the sinks bound to --log-jsonl/--log-sqlite. It
// returns a nil Emitter, and a no-op closer, when neither flag is set.
func buildEmitter() (*logging.Emitter, func() error, error) {
	var sinks []logging.Sink
	if path := viper.GetString("logging.jsonl-path"); path != "" {
		w, err := logging.NewJSONLWriter(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening --log-jsonl %q: %w", path, err)
		}
		sinks = append(sinks, w)
	}
	if path := viper.GetString("logging.sqlite-path"); path != "" {
		s, err := logging.NewSQLiteSink(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening --log-sqlite %q: %w", path, err)
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 0 {
		return nil, func() error { return nil }, nil
	}
	emitter := logging.NewEmitter(logging.EmitterConfig{AgentSystem: "pluginopctl"}, sinks...)
	return emitter, emitter.Close, nil
}

// buildHandler constructs a Handler per the bound dispatch.depth-cap flag,
// attaches an Emitter for any --log-jsonl/--log-sqlite sinks, and loads
// each named demo module into it in order. The returned closer flushes
// and releases the Emitter's sinks; callers must call it before exiting.
func buildHandler(ctx context.Context, names []string) (*dispatch.Handler, func() error, error) {
	cfg := dispatch.DefaultConfig()
	if depthCap := viper.GetInt("dispatch.depth-cap"); depthCap > 0 {
		cfg.ReentrancyDepthCap = depthCap
	}
	handler := dispatch.NewHandler(cfg)

	emitter, closer, err := buildEmitter()
	if err != nil {
		return nil, nil, err
	}
	handler.Emitter = emitter

	engine := runtime.NewNativeEngine()
	for i, name := range names {
		dm, err := lookupDemoModule(name)
		if err != nil {
			return nil, closer, err
		}
		nm := dm.build()
		compiled, err := engine.CompileNative(nm)
		if err != nil {
			return nil, closer, fmt.Errorf("compiling module %q: %w", name, err)
		}
		m, err := module.LoadCompiled(ctx, name, compiled, runtime.Imports{}, uint32(i+1))
		if err != nil {
			return nil, closer, fmt.Errorf("loading module %q: %w", name, err)
		}
		// Applied after LoadCompiled, so it has no effect on what the
		// module's own init export could see; none of the built-in demo
		// modules are permission-sensitive during init, so this only
		// matters for anchors dispatched later.
		m.Env.Permissions = dm.permissions
		handler.AddModule(m)
	}
	return handler, closer, nil
}
