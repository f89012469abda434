package quicfield

// FrameSendOrder places a registered frame relative to other frames within
// a packet.
type FrameSendOrder uint8

const (
	SendOrderFirst FrameSendOrder = iota
	SendOrderAfterACK
	SendOrderBeforeStream
	SendOrderEnd
)

// FrameSendKind bounds how many instances of a frame type may appear per packet.
type FrameSendKind uint8

const (
	SendKindOncePerPacket FrameSendKind = iota
	SendKindManyPerPacket
)

// FrameRegistration is a module's Init-time declaration that it owns a
// frame type, wire-stable across the module boundary (spec §6).
type FrameRegistration struct {
	Type           uint64         `cbor:"type"`
	SendOrder      FrameSendOrder `cbor:"send_order"`
	SendKind       FrameSendKind  `cbor:"send_kind"`
	AckEliciting   bool           `cbor:"ack_eliciting"`
	CountInFlight  bool           `cbor:"count_in_flight"`
}

// RegistrationKind discriminates Registration.
type RegistrationKind uint8

const (
	RegistrationKindTransportParameter RegistrationKind = iota
	RegistrationKindFrame
)

// Registration is a request made by a module at Init time: either it
// declares a transport parameter identified by its wire type, or it
// declares a frame via FrameRegistration.
type Registration struct {
	Kind                RegistrationKind   `cbor:"kind"`
	TransportParameter  uint64             `cbor:"transport_parameter,omitempty"`
	Frame               *FrameRegistration `cbor:"frame,omitempty"`
}
