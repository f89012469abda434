package quicfield

import "net"

// PacketType distinguishes the QUIC long/short header packet types.
type PacketType uint8

const (
	PacketTypeInitial PacketType = iota
	PacketTypeRetry
	PacketTypeHandshake
	PacketTypeZeroRTT
	PacketTypeVersionNegotiation
	PacketTypeShort
)

// KPacketNumberSpace enumerates the three packet number spaces defined by
// quic-recovery §A.2.
type KPacketNumberSpace uint8

const (
	SpaceInitial KPacketNumberSpace = iota
	SpaceHandshake
	SpaceApplicationData
)

// PacketNumber is a QUIC packet number.
type PacketNumber = uint64

// HeaderExt carries fields that may be absent prior to decryption; present
// only for received packets, and only best-effort.
type HeaderExt struct {
	PacketNumber    *uint64 `cbor:"packet_number,omitempty"`
	PacketNumberLen *uint8  `cbor:"packet_number_len,omitempty"`
	Token           []byte  `cbor:"token,omitempty"`
	KeyPhase        *bool   `cbor:"key_phase,omitempty"`
}

// Header is a QUIC packet header, as close as possible to its wire layout.
type Header struct {
	First              uint8      `cbor:"first"`
	Version            *uint32    `cbor:"version,omitempty"`
	DestinationCID     []byte     `cbor:"destination_cid"`
	SourceCID          []byte     `cbor:"source_cid,omitempty"`
	SupportedVersions  []byte     `cbor:"supported_versions,omitempty"`
	Ext                *HeaderExt `cbor:"ext,omitempty"`
}

// RcvInfo is network-layer information about a received packet.
type RcvInfo struct {
	From net.UDPAddr `cbor:"from"`
	To   net.UDPAddr `cbor:"to"`
}

// SentPacket mirrors quic-recovery §A.1.1, extended to double as the
// bookkeeping record used throughout packet sending, not only recovery.
type SentPacket struct {
	Header             Header    `cbor:"header"`
	SourceAddress      net.UDPAddr `cbor:"source_address"`
	DestinationAddress net.UDPAddr `cbor:"destination_address"`
	PacketNumber       uint64    `cbor:"packet_number"`
	PacketNumberLen    uint8     `cbor:"packet_number_len"`
	AckEliciting       bool      `cbor:"ack_eliciting"`
	InFlight           bool      `cbor:"in_flight"`
	SentBytes          int       `cbor:"sent_bytes"`
	TimeSent           UnixInstant `cbor:"time_sent"`
}

// ConnectionID is a connection ID record exposed to modules.
type ConnectionID struct {
	SequenceNumber      uint64 `cbor:"sequence_number"`
	ConnectionID        []byte `cbor:"connection_id"`
	StatelessResetToken []byte `cbor:"stateless_reset_token,omitempty"`
}

// UnixInstant is seconds+nanoseconds since a fixed epoch, the wire
// representation for both clocks and timer deadlines: the UNIX epoch for
// wall-clock readings, the monotonic clock's own epoch for its readings (spec
// §4.1: "instants as seconds+nanos since a fixed epoch").
type UnixInstant struct {
	Seconds     int64  `cbor:"seconds"`
	Nanoseconds uint32 `cbor:"nanoseconds"`
}
