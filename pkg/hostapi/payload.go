package hostapi

import (
	"github.com/core-quic/pluginop/pkg/operation"
	"github.com/core-quic/pluginop/pkg/pluginval"
	"github.com/core-quic/pluginop/pkg/quicfield"
)

// The request shapes below are the CBOR payload a host-import call carries
// across the module boundary (spec §6: "every cross-boundary byte buffer
// is encoded with the Value Codec" — these wrap that codec's Value where
// one is needed, plus whatever scalar addressing a call takes). Exported
// so a caller assembling a module's imports table, or a test standing in
// for the bytecode side, can construct them directly.

type GetInputRequest struct {
	Index uint32 `cbor:"index"`
}

type ConnectionFieldRequest struct {
	Field quicfield.ConnectionField `cbor:"field"`
}

type SetConnectionRequest struct {
	Field quicfield.ConnectionField `cbor:"field"`
	Value pluginval.Value           `cbor:"value"`
}

type RecoveryFieldRequest struct {
	Field quicfield.RecoveryField `cbor:"field"`
}

type SetRecoveryRequest struct {
	Field quicfield.RecoveryField `cbor:"field"`
	Value pluginval.Value         `cbor:"value"`
}

type SentPacketRequest struct {
	Space        quicfield.KPacketNumberSpace `cbor:"space"`
	PacketNumber uint64                       `cbor:"packet_number"`
	Field        quicfield.SentPacketField    `cbor:"field"`
}

type RcvPacketRequest struct {
	Field quicfield.RcvPacketField `cbor:"field"`
}

type OpaqueTagRequest struct {
	Tag uint64 `cbor:"tag"`
}

type StoreOpaqueRequest struct {
	Tag   uint64 `cbor:"tag"`
	Value uint32 `cbor:"value"`
}

type BufferGetRequest struct {
	Tag uint64 `cbor:"tag"`
	N   uint64 `cbor:"n"`
}

type BufferPutRequest struct {
	Tag  uint64 `cbor:"tag"`
	Data []byte `cbor:"data"`
}

type CallProtoOpRequest struct {
	Op   operation.Operation `cbor:"op"`
	Args []pluginval.Value   `cbor:"args"`
}

type SetTimerRequest struct {
	ID       uint64                `cbor:"id"`
	Deadline quicfield.UnixInstant `cbor:"deadline"`
}

type CancelTimerRequest struct {
	ID uint64 `cbor:"id"`
}

type PrintRequest struct {
	Text string `cbor:"text"`
}
