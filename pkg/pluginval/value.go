// Package pluginval implements PluginVal, the cross-boundary tagged value
// universe (spec §3/§4.1), and its CBOR wire codec.
package pluginval

import (
	"time"

	"github.com/core-quic/pluginop/pkg/quicfield"
)

// Kind discriminates Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindI32
	KindI64
	KindU32
	KindU64
	KindF32
	KindF64
	KindUsize
	KindBytes
	KindDuration
	KindUnixInstant
	KindSocketAddr
	KindQUIC
)

// BytesToken is a capability: possession authorizes reading up to
// MaxReadLen and writing up to MaxWriteLen bytes from/to the host-side
// region identified by Tag. Modules never see anything else (spec §3).
type BytesToken struct {
	Tag         uint64 `cbor:"tag"`
	MaxReadLen  uint64 `cbor:"max_read_len"`
	MaxWriteLen uint64 `cbor:"max_write_len"`
}

// SocketAddr is the wire form of a socket address: a family discriminator
// (4 or 6) followed by the address bytes and port (spec §4.1).
type SocketAddr struct {
	Family uint8  `cbor:"family"`
	IP     []byte `cbor:"ip"`
	Port   uint16 `cbor:"port"`
}

// Duration encodes as seconds+nanoseconds (spec §4.1).
type DurationValue struct {
	Seconds     int64  `cbor:"seconds"`
	Nanoseconds uint32 `cbor:"nanoseconds"`
}

// QValKind discriminates QVal, the nested QUIC-specific union.
type QValKind uint8

const (
	QValKindHeader QValKind = iota
	QValKindFrame
	QValKindRcvInfo
	QValKindPacketNumberSpace
	QValKindPacketType
)

// QVal is the nested QUIC value union carried by Value when Kind == KindQUIC.
type QVal struct {
	Kind              QValKind                  `cbor:"kind"`
	Header            *quicfield.Header         `cbor:"header,omitempty"`
	Frame             *quicfield.Frame          `cbor:"frame,omitempty"`
	RcvInfo           *quicfield.RcvInfo        `cbor:"rcv_info,omitempty"`
	PacketNumberSpace quicfield.KPacketNumberSpace `cbor:"packet_number_space,omitempty"`
	PacketType        quicfield.PacketType      `cbor:"packet_type,omitempty"`
}

// Value is PluginVal: the cross-boundary value universe. Exactly the field
// matching Kind is meaningful.
type Value struct {
	Kind Kind `cbor:"kind"`

	Bool       bool          `cbor:"bool,omitempty"`
	I32        int32         `cbor:"i32,omitempty"`
	I64        int64         `cbor:"i64,omitempty"`
	U32        uint32        `cbor:"u32,omitempty"`
	U64        uint64        `cbor:"u64,omitempty"`
	F32        float32       `cbor:"f32,omitempty"`
	F64        float64       `cbor:"f64,omitempty"`
	Bytes      *BytesToken   `cbor:"bytes,omitempty"`
	Duration   DurationValue `cbor:"duration,omitempty"`
	UnixInstant quicfield.UnixInstant `cbor:"unix_instant,omitempty"`
	SocketAddr *SocketAddr   `cbor:"socket_addr,omitempty"`
	QUIC       *QVal         `cbor:"quic,omitempty"`
}

// Constructors. Explicit per-variant functions, matching the codebase's
// preference for concrete code over generic helpers.

func NewBool(v bool) Value   { return Value{Kind: KindBool, Bool: v} }
func NewI32(v int32) Value   { return Value{Kind: KindI32, I32: v} }
func NewI64(v int64) Value   { return Value{Kind: KindI64, I64: v} }
func NewU32(v uint32) Value  { return Value{Kind: KindU32, U32: v} }
func NewU64(v uint64) Value  { return Value{Kind: KindU64, U64: v} }
func NewF32(v float32) Value { return Value{Kind: KindF32, F32: v} }
func NewF64(v float64) Value { return Value{Kind: KindF64, F64: v} }

// NewUsize carries v as a U64 with the semantic promise of fitting the
// target pointer width (spec §4.1: "Usize is a U64...").
func NewUsize(v uint64) Value { return Value{Kind: KindUsize, U64: v} }

func NewBytes(tok BytesToken) Value { return Value{Kind: KindBytes, Bytes: &tok} }

func NewDuration(d time.Duration) Value {
	return Value{Kind: KindDuration, Duration: DurationValue{
		Seconds:     int64(d / time.Second),
		Nanoseconds: uint32(d % time.Second),
	}}
}

func NewUnixInstant(v quicfield.UnixInstant) Value {
	return Value{Kind: KindUnixInstant, UnixInstant: v}
}

func NewSocketAddr(v SocketAddr) Value { return Value{Kind: KindSocketAddr, SocketAddr: &v} }

func NewQUICHeader(h quicfield.Header) Value {
	return Value{Kind: KindQUIC, QUIC: &QVal{Kind: QValKindHeader, Header: &h}}
}

func NewQUICFrame(f quicfield.Frame) Value {
	return Value{Kind: KindQUIC, QUIC: &QVal{Kind: QValKindFrame, Frame: &f}}
}

func NewQUICRcvInfo(r quicfield.RcvInfo) Value {
	return Value{Kind: KindQUIC, QUIC: &QVal{Kind: QValKindRcvInfo, RcvInfo: &r}}
}

func NewQUICPacketNumberSpace(s quicfield.KPacketNumberSpace) Value {
	return Value{Kind: KindQUIC, QUIC: &QVal{Kind: QValKindPacketNumberSpace, PacketNumberSpace: s}}
}

func NewQUICPacketType(t quicfield.PacketType) Value {
	return Value{Kind: KindQUIC, QUIC: &QVal{Kind: QValKindPacketType, PacketType: t}}
}
