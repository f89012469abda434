package hostapi

import (
	"context"

	"github.com/fxamacker/cbor/v2"

	"github.com/core-quic/pluginop/pkg/module"
	"github.com/core-quic/pluginop/pkg/pluginval"
	"github.com/core-quic/pluginop/pkg/quicfield"
)

// SaveOutput implements save_output(v): append v to the current frame's
// result vector (spec §4.7, Output permission).
func (h *Host) SaveOutput(_ context.Context, env uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermOutput) {
		return nil, int32(APICallError), nil
	}
	v, err := h.decodeValue(payload)
	if err != nil {
		return nil, int32(APICallError), nil
	}
	frame, ok := h.frame(env)
	if !ok {
		return nil, int32(APICallError), nil
	}
	frame.SaveOutput(v)
	return nil, int32(Success), nil
}

// SaveOutputs implements save_outputs(vs): replace the current frame's
// result vector wholesale.
func (h *Host) SaveOutputs(_ context.Context, env uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermOutput) {
		return nil, int32(APICallError), nil
	}
	vs, err := h.decodeValues(payload)
	if err != nil {
		return nil, int32(APICallError), nil
	}
	frame, ok := h.frame(env)
	if !ok {
		return nil, int32(APICallError), nil
	}
	frame.SaveOutputs(vs)
	return nil, int32(Success), nil
}

// StoreOpaque implements store_opaque(tag, ptr) (spec §4.3).
func (h *Host) StoreOpaque(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermOpaque) {
		return nil, int32(APICallError), nil
	}
	var req StoreOpaqueRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	h.Handler.Opaque.Store(h.ModuleName, req.Tag, req.Value)
	return nil, int32(Success), nil
}

// GetOpaque implements get_opaque(tag).
func (h *Host) GetOpaque(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermOpaque) {
		return nil, int32(APICallError), nil
	}
	var req OpaqueTagRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	val, err := h.Handler.Opaque.Get(h.ModuleName, req.Tag)
	if err != nil {
		return nil, int32(APICallError), nil
	}
	b, code := h.encodeValue(pluginval.NewU32(val))
	return b, int32(code), nil
}

// RemoveOpaque implements remove_opaque(tag).
func (h *Host) RemoveOpaque(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermOpaque) {
		return nil, int32(APICallError), nil
	}
	var req OpaqueTagRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	h.Handler.Opaque.Remove(h.ModuleName, req.Tag)
	return nil, int32(Success), nil
}

// Print implements print(s), always enabled. A Host with no PrintSink
// elides the diagnostic entirely, matching spec §4.7's "host may elide".
func (h *Host) Print(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	var req PrintRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	if h.PrintSink != nil {
		h.PrintSink.Print(h.ModuleName, req.Text)
	}
	return nil, int32(Success), nil
}

// GetConnection implements get_connection(field, out). A selector/value
// type mismatch, as reported by the Connection implementation, surfaces as
// BadType (spec §4.7).
func (h *Host) GetConnection(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermConnectionAccess) {
		return nil, int32(APICallError), nil
	}
	if h.Conn == nil {
		return nil, int32(APICallError), nil
	}
	var req ConnectionFieldRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	v, err := h.Conn.GetField(req.Field)
	if err != nil {
		return nil, int32(BadType), nil
	}
	b, code := h.encodeValue(v)
	return b, int32(code), nil
}

// SetConnection implements set_connection(field, val).
func (h *Host) SetConnection(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermConnectionAccess) {
		return nil, int32(APICallError), nil
	}
	if h.Conn == nil {
		return nil, int32(APICallError), nil
	}
	var req SetConnectionRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	if err := h.Conn.SetField(req.Field, req.Value); err != nil {
		return nil, int32(BadType), nil
	}
	return nil, int32(Success), nil
}

// GetRecovery implements get_recovery(field, out).
func (h *Host) GetRecovery(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermConnectionAccess) {
		return nil, int32(APICallError), nil
	}
	if h.Recovery == nil {
		return nil, int32(APICallError), nil
	}
	var req RecoveryFieldRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	v, err := h.Recovery.GetField(req.Field)
	if err != nil {
		return nil, int32(BadType), nil
	}
	b, code := h.encodeValue(v)
	return b, int32(code), nil
}

// SetRecovery implements set_recovery(field, val).
func (h *Host) SetRecovery(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermConnectionAccess) {
		return nil, int32(APICallError), nil
	}
	if h.Recovery == nil {
		return nil, int32(APICallError), nil
	}
	var req SetRecoveryRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	if err := h.Recovery.SetField(req.Field, req.Value); err != nil {
		return nil, int32(BadType), nil
	}
	return nil, int32(Success), nil
}

// GetSentPacket implements get_sent_packet(field, out).
func (h *Host) GetSentPacket(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermConnectionAccess) {
		return nil, int32(APICallError), nil
	}
	if h.SentPackets == nil {
		return nil, int32(APICallError), nil
	}
	var req SentPacketRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	v, err := h.SentPackets.GetSentPacket(req.Space, req.PacketNumber, req.Field)
	if err != nil {
		return nil, int32(BadType), nil
	}
	b, code := h.encodeValue(v)
	return b, int32(code), nil
}

// GetRcvPacket implements get_rcv_packet(field, out).
func (h *Host) GetRcvPacket(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermConnectionAccess) {
		return nil, int32(APICallError), nil
	}
	if h.RcvPackets == nil {
		return nil, int32(APICallError), nil
	}
	var req RcvPacketRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	v, err := h.RcvPackets.GetRcvPacket(req.Field)
	if err != nil {
		return nil, int32(BadType), nil
	}
	b, code := h.encodeValue(v)
	return b, int32(code), nil
}

// GetInput implements get_input(i, out): read argument i of the current
// dispatch frame. Always enabled.
func (h *Host) GetInput(_ context.Context, env uint32, payload []byte) ([]byte, int32, error) {
	var req GetInputRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	frame, ok := h.frame(env)
	if !ok {
		return nil, int32(APICallError), nil
	}
	v, ok := frame.Input(int(req.Index))
	if !ok {
		return nil, int32(APICallError), nil
	}
	b, code := h.encodeValue(v)
	return b, int32(code), nil
}

// GetInputs implements get_inputs(out): read every argument of the current
// dispatch frame. Always enabled.
func (h *Host) GetInputs(_ context.Context, env uint32, _ []byte) ([]byte, int32, error) {
	frame, ok := h.frame(env)
	if !ok {
		return nil, int32(APICallError), nil
	}
	b, code := h.encodeValues(frame.Args)
	return b, int32(code), nil
}

// BufferGetBytes implements buffer_get_bytes(tag, out).
func (h *Host) BufferGetBytes(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermReadBuffer) {
		return nil, int32(APICallError), nil
	}
	var req BufferGetRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	data, err := h.Handler.Buffers.Read(req.Tag, req.N)
	if err != nil {
		return nil, int32(ShortInternalBuffer), nil
	}
	return data, int32(Success), nil
}

// BufferPutBytes implements buffer_put_bytes(tag, in).
func (h *Host) BufferPutBytes(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermWriteBuffer) {
		return nil, int32(APICallError), nil
	}
	var req BufferPutRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	if _, err := h.Handler.Buffers.Put(req.Tag, req.Data); err != nil {
		return nil, int32(ShortInternalBuffer), nil
	}
	return nil, int32(Success), nil
}

// CallProtoOp implements call_proto_op(op, args, inputs, out): reentrant
// dispatch back through the handler (spec §4.6: "a body may call
// call_proto_op_from_plugin... the frame stack makes this safe"). Always
// enabled.
func (h *Host) CallProtoOp(ctx context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	var req CallProtoOpRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	out, err := h.Handler.Call(ctx, req.Op, req.Args)
	if err != nil {
		return nil, int32(APICallError), nil
	}
	b, code := h.encodeValues(out)
	return b, int32(code), nil
}

// GetCurrentTime implements get_current_time(out): the monotonic clock.
// Always enabled.
func (h *Host) GetCurrentTime(_ context.Context, _ uint32, _ []byte) ([]byte, int32, error) {
	b, code := h.encodeValue(pluginval.NewUnixInstant(h.Clock.Monotonic()))
	return b, int32(code), nil
}

// GetTime implements get_time(out): the wall clock. Always enabled.
func (h *Host) GetTime(_ context.Context, _ uint32, _ []byte) ([]byte, int32, error) {
	b, code := h.encodeValue(pluginval.NewUnixInstant(h.Clock.Wall()))
	return b, int32(code), nil
}

// Register implements register(reg): an Init-time-only declaration (spec
// §4.7: "Registrations made outside Init are rejected.").
func (h *Host) Register(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	if h.Mod != nil && h.Mod.Env.Initialized {
		return nil, int32(APICallError), nil
	}
	var reg quicfield.Registration
	if err := cbor.Unmarshal(payload, &reg); err != nil {
		return nil, int32(APICallError), nil
	}
	if h.Regs == nil {
		return nil, int32(APICallError), nil
	}
	if err := h.Regs.Register(h.ModuleName, reg); err != nil {
		return nil, int32(APICallError), nil
	}
	return nil, int32(Success), nil
}

// GenerateConnectionID implements generate_connection_id(out).
func (h *Host) GenerateConnectionID(_ context.Context, _ uint32, _ []byte) ([]byte, int32, error) {
	if !h.hasPermission(module.PermConnectionAccess) {
		return nil, int32(APICallError), nil
	}
	if h.Conn == nil {
		return nil, int32(APICallError), nil
	}
	cid, err := h.Conn.GenerateConnectionID()
	if err != nil {
		return nil, int32(APICallError), nil
	}
	b, err := cbor.Marshal(cid)
	if err != nil {
		return nil, int32(SerializeError), nil
	}
	return b, int32(Success), nil
}

// SetTimer implements set_timer(ts, id, cb). Always enabled.
func (h *Host) SetTimer(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	var req SetTimerRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	h.Handler.SetTimer(h.ModuleName, req.ID, deadlineFromUnixInstant(req.Deadline.Seconds, req.Deadline.Nanoseconds))
	return nil, int32(Success), nil
}

// CancelTimer implements cancel_timer(id). Cancelling an unknown id is a
// no-op (spec §4.7). Always enabled.
func (h *Host) CancelTimer(_ context.Context, _ uint32, payload []byte) ([]byte, int32, error) {
	var req CancelTimerRequest
	if code := decodeRequest(payload, &req); code != Success {
		return nil, int32(code), nil
	}
	h.Handler.CancelTimer(h.ModuleName, req.ID)
	return nil, int32(Success), nil
}
