package quicfield

// FrameKind discriminates the Frame union. Frame is wire-faithful to the
// QUIC transport's in-memory layout, not to its on-wire byte encoding
// (spec §4.1: "Frame and Header encode as their in-memory layout").
type FrameKind uint8

const (
	FrameKindPadding FrameKind = iota
	FrameKindPing
	FrameKindACK
	FrameKindResetStream
	FrameKindStopSending
	FrameKindCrypto
	FrameKindNewToken
	FrameKindStream
	FrameKindMaxData
	FrameKindMaxStreamData
	FrameKindMaxStreams
	FrameKindDataBlocked
	FrameKindStreamDataBlocked
	FrameKindStreamsBlocked
	FrameKindNewConnectionID
	FrameKindRetireConnectionID
	FrameKindPathChallenge
	FrameKindPathResponse
	FrameKindConnectionClose
	FrameKindHandshakeDone
	FrameKindExtension
)

// Frame is a QUIC frame. Exactly one of the pointer fields matching Kind is
// set; this shape (discriminant + one pointer per variant) keeps the CBOR
// encoding self-describing without a custom marshaler.
type Frame struct {
	Kind FrameKind `cbor:"kind"`

	Padding            *PaddingFrame            `cbor:"padding,omitempty"`
	Ping               *PingFrame               `cbor:"ping,omitempty"`
	ACK                *ACKFrame                `cbor:"ack,omitempty"`
	ResetStream        *ResetStreamFrame        `cbor:"reset_stream,omitempty"`
	StopSending        *StopSendingFrame        `cbor:"stop_sending,omitempty"`
	Crypto             *CryptoFrame             `cbor:"crypto,omitempty"`
	NewToken           *NewTokenFrame           `cbor:"new_token,omitempty"`
	Stream             *StreamFrame             `cbor:"stream,omitempty"`
	MaxData            *MaxDataFrame            `cbor:"max_data,omitempty"`
	MaxStreamData      *MaxStreamDataFrame      `cbor:"max_stream_data,omitempty"`
	MaxStreams         *MaxStreamsFrame         `cbor:"max_streams,omitempty"`
	DataBlocked        *DataBlockedFrame        `cbor:"data_blocked,omitempty"`
	StreamDataBlocked  *StreamDataBlockedFrame  `cbor:"stream_data_blocked,omitempty"`
	StreamsBlocked     *StreamsBlockedFrame     `cbor:"streams_blocked,omitempty"`
	NewConnectionID    *NewConnectionIDFrame    `cbor:"new_connection_id,omitempty"`
	RetireConnectionID *RetireConnectionIDFrame `cbor:"retire_connection_id,omitempty"`
	PathChallenge      *PathChallengeFrame      `cbor:"path_challenge,omitempty"`
	PathResponse       *PathResponseFrame       `cbor:"path_response,omitempty"`
	ConnectionClose    *ConnectionCloseFrame    `cbor:"connection_close,omitempty"`
	HandshakeDone      *HandshakeDoneFrame      `cbor:"handshake_done,omitempty"`
	Extension          *ExtensionFrame          `cbor:"extension,omitempty"`
}

// PaddingFrame (type=0x00) has no semantic value; length is the number of
// consecutive padding frames coalesced together.
type PaddingFrame struct {
	Length uint64 `cbor:"length"`
}

// PingFrame (type=0x01) checks peer reachability.
type PingFrame struct{}

// ACKFrame (types 0x02/0x03) acknowledges received packets.
type ACKFrame struct {
	LargestAcknowledged uint64    `cbor:"largest_acknowledged"`
	AckDelay            uint64    `cbor:"ack_delay"`
	AckRangeCount       uint64    `cbor:"ack_range_count"`
	FirstAckRange       uint64    `cbor:"first_ack_range"`
	AckRanges           []byte    `cbor:"ack_ranges"`
	EcnCounts           *EcnCount `cbor:"ecn_counts,omitempty"`
}

// EcnCount carries the three ECN codepoint counters, present only on
// ACK frames of type 0x03.
type EcnCount struct {
	ECT0Count  uint64 `cbor:"ect0_count"`
	ECT1Count  uint64 `cbor:"ect1_count"`
	ECTCECount uint64 `cbor:"ectce_count"`
}

// AckRange is one (Gap, ACK Range) pair within an ACK frame's range set.
type AckRange struct {
	Gap          uint64 `cbor:"gap"`
	AckRangeLength uint64 `cbor:"ack_range_length"`
}

// ResetStreamFrame (type=0x04) abruptly terminates the sending side of a stream.
type ResetStreamFrame struct {
	StreamID                  uint64 `cbor:"stream_id"`
	ApplicationProtocolErrorCode uint64 `cbor:"application_protocol_error_code"`
	FinalSize                 uint64 `cbor:"final_size"`
}

// StopSendingFrame (type=0x05) requests a peer cease transmission on a stream.
type StopSendingFrame struct {
	StreamID                  uint64 `cbor:"stream_id"`
	ApplicationProtocolErrorCode uint64 `cbor:"application_protocol_error_code"`
}

// CryptoFrame (type=0x06) carries a segment of the handshake byte stream.
type CryptoFrame struct {
	Offset     uint64 `cbor:"offset"`
	Length     uint64 `cbor:"length"`
	CryptoData []byte `cbor:"crypto_data"`
}

// NewTokenFrame (type=0x07) gives the client a token for a future Initial packet.
type NewTokenFrame struct {
	TokenLength uint64 `cbor:"token_length"`
	Token       []byte `cbor:"token"`
}

// StreamFrame (types 0x08-0x0f) carries stream data.
type StreamFrame struct {
	StreamID   uint64  `cbor:"stream_id"`
	Offset     *uint64 `cbor:"offset,omitempty"`
	Length     *uint64 `cbor:"length,omitempty"`
	Fin        bool    `cbor:"fin"`
	StreamData []byte  `cbor:"stream_data"`
}

// MaxDataFrame (type=0x10) raises the connection-level flow control limit.
type MaxDataFrame struct {
	MaximumData uint64 `cbor:"maximum_data"`
}

// MaxStreamDataFrame (type=0x11) raises a stream-level flow control limit.
type MaxStreamDataFrame struct {
	StreamID         uint64 `cbor:"stream_id"`
	MaximumStreamData uint64 `cbor:"maximum_stream_data"`
}

// MaxStreamsFrame (types 0x12/0x13) raises the stream-count limit.
type MaxStreamsFrame struct {
	Unidirectional bool   `cbor:"unidirectional"`
	MaximumStreams uint64 `cbor:"maximum_streams"`
}

// DataBlockedFrame (type=0x14) signals connection-level flow control blocking.
type DataBlockedFrame struct {
	MaximumData uint64 `cbor:"maximum_data"`
}

// StreamDataBlockedFrame (type=0x15) signals stream-level flow control blocking.
type StreamDataBlockedFrame struct {
	StreamID          uint64 `cbor:"stream_id"`
	MaximumStreamData uint64 `cbor:"maximum_stream_data"`
}

// StreamsBlockedFrame (types 0x16/0x17) signals the peer hit a stream-count limit.
type StreamsBlockedFrame struct {
	Unidirectional bool   `cbor:"unidirectional"`
	MaximumStreams uint64 `cbor:"maximum_streams"`
}

// NewConnectionIDFrame (type=0x18) offers an alternative connection ID.
type NewConnectionIDFrame struct {
	SequenceNumber      uint64 `cbor:"sequence_number"`
	RetirePriorTo       uint64 `cbor:"retire_prior_to"`
	Length              uint8  `cbor:"length"`
	ConnectionID        []byte `cbor:"connection_id"`
	StatelessResetToken []byte `cbor:"stateless_reset_token"`
}

// RetireConnectionIDFrame (type=0x19) retires a previously issued connection ID.
type RetireConnectionIDFrame struct {
	SequenceNumber uint64 `cbor:"sequence_number"`
}

// PathChallengeFrame (type=0x1a) checks path reachability during migration.
type PathChallengeFrame struct {
	Data uint64 `cbor:"data"`
}

// PathResponseFrame (type=0x1b) answers a PathChallengeFrame.
type PathResponseFrame struct {
	Data uint64 `cbor:"data"`
}

// ConnectionCloseFrame (types 0x1c/0x1d) notifies the peer the connection is closing.
type ConnectionCloseFrame struct {
	ErrorCode         uint64  `cbor:"error_code"`
	FrameType         *uint64 `cbor:"frame_type,omitempty"`
	ReasonPhraseLength uint64 `cbor:"reason_phrase_length"`
	ReasonPhrase      []byte  `cbor:"reason_phrase"`
}

// HandshakeDoneFrame (type=0x1e) confirms the handshake to the client.
type HandshakeDoneFrame struct{}

// ExtensionFrame carries an extension frame type opaque to the host; the
// plugin owning Tag is responsible for its content.
type ExtensionFrame struct {
	FrameType uint64 `cbor:"frame_type"`
	Tag       uint64 `cbor:"tag"`
}
