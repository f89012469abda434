package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/core-quic/pluginop/pkg/module"
	"github.com/core-quic/pluginop/pkg/runtime"
)

// demoModule is a buildable in-process stand-in for a bytecode module,
// since no external WASM runtime is wired (pkg/runtime.NativeEngine).
// These exist purely so this CLI has something to load, list, and call.
type demoModule struct {
	describe    string
	permissions module.Permission
	build       func() *runtime.NativeModule
}

var demoModules = map[string]demoModule{
	"echo": {
		describe:    "replaces update_rtt: a no-op body, for exercising first-replace-wins against other modules",
		permissions: module.DefaultPermissions,
		build: func() *runtime.NativeModule {
			nm := runtime.NewNativeModule()
			nm.Export("init", rc0)
			nm.Export("update_rtt", rc0)
			return nm
		},
	},
	"logger": {
		describe:    "before get_packet_to_send: no-op hook, for tracing dispatch order",
		permissions: module.DefaultPermissions,
		build: func() *runtime.NativeModule {
			nm := runtime.NewNativeModule()
			nm.Export("init", rc0)
			nm.Export("before_get_packet_to_send", rc0)
			return nm
		},
	},
	"sentinel": {
		describe:    "after on_packet_sent: no-op hook, for observing post-anchor dispatch",
		permissions: module.DefaultPermissions,
		build: func() *runtime.NativeModule {
			nm := runtime.NewNativeModule()
			nm.Export("init", rc0)
			nm.Export("after_on_packet_sent", rc0)
			return nm
		},
	},
}

func rc0(context.Context, uint32, runtime.Imports) (int64, error) { return 0, nil }

func demoModuleNames() []string {
	names := make([]string, 0, len(demoModules))
	for name := range demoModules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupDemoModule(name string) (demoModule, error) {
	dm, ok := demoModules[name]
	if !ok {
		return demoModule{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownModule, name, demoModuleNames())
	}
	return dm, nil
}
