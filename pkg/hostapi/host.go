package hostapi

import (
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/core-quic/pluginop/pkg/clock"
	"github.com/core-quic/pluginop/pkg/dispatch"
	"github.com/core-quic/pluginop/pkg/module"
	"github.com/core-quic/pluginop/pkg/pluginval"
)

// Host binds the capability surface to one loaded module and the handler
// it was loaded into. One Host exists per module; its methods are bound
// into that module's runtime.Imports table at load time.
type Host struct {
	ModuleName string
	Mod        *module.Module
	Handler    *dispatch.Handler

	Conn        Connection
	Recovery    Recovery
	SentPackets SentPackets
	RcvPackets  RcvPackets
	Regs        Registrations
	PrintSink   PrintSink
	Clock       clock.Source
}

// New returns a Host for moduleName, bound to handler and the surrounding
// connection/recovery state. Conn, Recovery, SentPackets, RcvPackets, Regs
// and PrintSink may be left nil; calls that need a nil collaborator fail
// with APICallError rather than panicking.
func New(moduleName string, mod *module.Module, handler *dispatch.Handler) *Host {
	return &Host{ModuleName: moduleName, Mod: mod, Handler: handler, Clock: clock.System{}}
}

// frame resolves the dispatch frame env addresses, for calls that read or
// write the current dispatch frame (get_input, save_output, ...).
func (h *Host) frame(env uint32) (*dispatch.Frame, bool) {
	return h.Handler.FrameByID(env)
}

// decodeRequest unmarshals payload into out, reporting APICallError for a
// malformed request rather than failing the call outright.
func decodeRequest(payload []byte, out any) Code {
	if err := cbor.Unmarshal(payload, out); err != nil {
		return APICallError
	}
	return Success
}

// valueLimit returns the Value Codec bound this Host enforces, sourced
// from its Handler's HandlerConfig.MaxEncodedValueBytes so a handler
// configured with a smaller bound rejects oversized values at this
// boundary rather than at pluginval's package default. A Host built
// without a Handler falls back to pluginval.MaxEncodedSize.
func (h *Host) valueLimit() int {
	if h.Handler == nil {
		return pluginval.MaxEncodedSize
	}
	if n := h.Handler.Config().MaxEncodedValueBytes; n > 0 {
		return n
	}
	return pluginval.MaxEncodedSize
}

// decodeValue deserializes payload through the Value Codec, enforcing
// this Host's configured bound.
func (h *Host) decodeValue(payload []byte) (pluginval.Value, error) {
	return pluginval.DecodeWithLimit(payload, h.valueLimit())
}

// decodeValues deserializes a CBOR array of Values through the Value
// Codec, enforcing this Host's configured bound.
func (h *Host) decodeValues(payload []byte) ([]pluginval.Value, error) {
	return pluginval.DecodeManyWithLimit(payload, h.valueLimit())
}

// encodeValue serializes v through the Value Codec, enforcing this Host's
// configured bound and translating an oversized or unencodable value into
// SerializeError.
func (h *Host) encodeValue(v pluginval.Value) ([]byte, Code) {
	b, err := pluginval.EncodeWithLimit(v, h.valueLimit())
	if err != nil {
		return nil, SerializeError
	}
	return b, Success
}

// encodeValues serializes vs as a single CBOR array, enforcing this
// Host's configured bound.
func (h *Host) encodeValues(vs []pluginval.Value) ([]byte, Code) {
	b, err := pluginval.EncodeManyWithLimit(vs, h.valueLimit())
	if err != nil {
		return nil, SerializeError
	}
	return b, Success
}

// hasPermission reports whether h.Mod holds want, false also when h.Mod is
// nil (a Host constructed without a module grants nothing).
func (h *Host) hasPermission(want module.Permission) bool {
	return h.Mod != nil && h.Mod.Env.Permissions.Has(want)
}

func deadlineFromUnixInstant(seconds int64, nanoseconds uint32) time.Time {
	return time.Unix(seconds, int64(nanoseconds))
}
