// Package glue implements the pluginizable host glue (spec §4.8): the
// decorator that sits in front of a connection's native QUIC operations
// and gives an installed module's Replace body first refusal.
package glue

import (
	"context"

	"github.com/core-quic/pluginop/pkg/dispatch"
	"github.com/core-quic/pluginop/pkg/operation"
	"github.com/core-quic/pluginop/pkg/pluginval"
)

// NativeConnection is the native-code body for every operation family that
// has a natural connection-level implementation (spec operation-naming
// grammar §3's zero-parameter families, minus Init/Test which are
// module-lifecycle rather than connection operations).
type NativeConnection interface {
	ProcessVersionNegotiation(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)
	GetPacketToSend(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)
	DecryptPacket(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)
	OnPacketProcessed(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)
	OnPacketSent(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)
	SetLossDetectionTimer(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)
	UpdateRtt(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error)
}

// noCopy marks PluginizableConnection as non-relocatable: modules hold raw
// references to its address (spec §4.8: "the composite must not move in
// memory"). go vet's copylocks check flags any accidental copy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// PluginizableConnection binds a NativeConnection to a Handler. Every
// method is a candidate override point: if an installed module provides a
// Replace body for the corresponding operation, it runs instead of the
// native one; otherwise the native body runs unmodified (spec §4.8).
type PluginizableConnection struct {
	noCopy noCopy

	Native  NativeConnection
	Handler *dispatch.Handler
}

// New returns a PluginizableConnection wrapping native and bound to
// handler. The returned value must be passed by pointer from here on.
func New(native NativeConnection, handler *dispatch.Handler) *PluginizableConnection {
	return &PluginizableConnection{Native: native, Handler: handler}
}

var _ NativeConnection = (*PluginizableConnection)(nil)

// invoke is the single decision in spec §4.8: "if handler.provides(op,
// Replace) then handler.call(op, …), else run the native body." It is the
// only observable cost on the native path.
func (c *PluginizableConnection) invoke(ctx context.Context, op operation.Operation, args []pluginval.Value, native func(context.Context, []pluginval.Value) ([]pluginval.Value, error)) ([]pluginval.Value, error) {
	if c.Handler.Provides(op, operation.Replace) {
		return c.Handler.Call(ctx, op, args)
	}
	return native(ctx, args)
}

func (c *PluginizableConnection) ProcessVersionNegotiation(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
	return c.invoke(ctx, operation.Operation{Kind: operation.KindProcessVersionNegotiation}, args, c.Native.ProcessVersionNegotiation)
}

func (c *PluginizableConnection) GetPacketToSend(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
	return c.invoke(ctx, operation.Operation{Kind: operation.KindGetPacketToSend}, args, c.Native.GetPacketToSend)
}

func (c *PluginizableConnection) DecryptPacket(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
	return c.invoke(ctx, operation.Operation{Kind: operation.KindDecryptPacket}, args, c.Native.DecryptPacket)
}

func (c *PluginizableConnection) OnPacketProcessed(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
	return c.invoke(ctx, operation.Operation{Kind: operation.KindOnPacketProcessed}, args, c.Native.OnPacketProcessed)
}

func (c *PluginizableConnection) OnPacketSent(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
	return c.invoke(ctx, operation.Operation{Kind: operation.KindOnPacketSent}, args, c.Native.OnPacketSent)
}

func (c *PluginizableConnection) SetLossDetectionTimer(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
	return c.invoke(ctx, operation.Operation{Kind: operation.KindSetLossDetectionTimer}, args, c.Native.SetLossDetectionTimer)
}

func (c *PluginizableConnection) UpdateRtt(ctx context.Context, args []pluginval.Value) ([]pluginval.Value, error) {
	return c.invoke(ctx, operation.Operation{Kind: operation.KindUpdateRtt}, args, c.Native.UpdateRtt)
}
