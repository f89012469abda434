package quicfield

// Host indicates whether a piece of information is about the local or the
// remote endpoint.
type Host uint8

const (
	HostLocal Host = iota
	HostRemote
)

// Direction indicates whether information concerns a source or destination.
type Direction uint8

const (
	DirectionSource Direction = iota
	DirectionDestination
)

// IDList is a sub-selector into a monotonically-ID-keyed collection
// (connection IDs, addresses).
type IDListKind uint8

const (
	IDListLength IDListKind = iota
	IDListMinID
	IDListMaxID
	IDListElem
	IDListAll
)

// IDList selects one element, a bound, the length, or every element of an
// ID-keyed collection. Elem is meaningful only when Kind == IDListElem.
type IDList struct {
	Kind IDListKind `cbor:"kind"`
	Elem uint64     `cbor:"elem,omitempty"`
}

// TransportParameterField names a classical transport parameter.
type TransportParameterField uint8

const (
	TransportParameterAckDelayExponent TransportParameterField = iota
)

// ConnectionFieldKind discriminates ConnectionField.
type ConnectionFieldKind uint8

const (
	ConnectionFieldIsServer ConnectionFieldKind = iota
	ConnectionFieldInternalID
	ConnectionFieldVersion
	ConnectionFieldMaxTxData
	ConnectionFieldConnectionID
	ConnectionFieldPacketNumberSpace
	ConnectionFieldTransportParameter
	ConnectionFieldToken
	ConnectionFieldConnectionError
	ConnectionFieldHandshakeWriteLevel
	ConnectionFieldIsEstablished
	ConnectionFieldIsInEarlyData
	ConnectionFieldIsBlocked
	ConnectionFieldHasFlushableStreams
	ConnectionFieldHasBlockedStreams
	ConnectionFieldMaxSendUdpPayloadLength
	ConnectionFieldMaxSendBytes
	ConnectionFieldAddress
	ConnectionFieldRxData
)

// ConnectionField addresses one readable/writable attribute of the
// connection. The sub-selector fields are populated only for the kinds that
// need them (ConnectionID, PacketNumberSpace, TransportParameter, Address).
type ConnectionField struct {
	Kind ConnectionFieldKind `cbor:"kind"`

	Direction     Direction               `cbor:"direction,omitempty"`
	IDList        IDList                  `cbor:"id_list,omitempty"`
	Space         KPacketNumberSpace      `cbor:"space,omitempty"`
	PNSpaceField  PacketNumberSpaceField  `cbor:"pn_space_field,omitempty"`
	Host          Host                    `cbor:"host,omitempty"`
	TPField       TransportParameterField `cbor:"tp_field,omitempty"`
}

// PacketNumberSpaceFieldKind discriminates PacketNumberSpaceField.
type PacketNumberSpaceFieldKind uint8

const (
	PNSpaceReceivedPacketNeedAck PacketNumberSpaceFieldKind = iota
	PNSpaceAckEllicited
	PNSpaceNextPacketNumber
	PNSpaceHasSendKeys
	PNSpaceShouldSend
	PNSpaceLargestRxPacketNumber
)

// PacketNumberSpaceField names a readable/writable attribute of a single
// packet number space.
type PacketNumberSpaceField = PacketNumberSpaceFieldKind

// RecoveryFieldKind discriminates RecoveryField.
type RecoveryFieldKind uint8

const (
	RecoveryLatestRtt RecoveryFieldKind = iota
	RecoverySmoothedRtt
	RecoveryRttvar
	RecoveryMinRtt
	RecoveryFirstRttSample
	RecoveryMaxAckDelay
	RecoveryLossDetectionTimer
	RecoveryPtoCount
	RecoveryTimeOfLastAckElicitingPacket
	RecoveryLargestAckedPacket
	RecoveryLossTime
	RecoverySentPackets
	RecoveryMaxDatagramSize
	RecoveryEcnCeCounters
	RecoveryBytesInFlight
	RecoveryCongestionWindow
	RecoveryCongestionRecoveryStartTime
	RecoverySsthresh
)

// RecoveryField addresses one quic-recovery §A.3/§B.2 field. Space and
// PacketNumber are populated only for the per-space/per-packet variants
// (PtoCount, TimeOfLastAckElicitingPacket, LargestAckedPacket, LossTime,
// SentPackets, EcnCeCounters).
type RecoveryField struct {
	Kind         RecoveryFieldKind  `cbor:"kind"`
	Space        KPacketNumberSpace `cbor:"space,omitempty"`
	PacketNumber uint64             `cbor:"packet_number,omitempty"`
}

// SentPacketField addresses one attribute of a SentPacket record.
type SentPacketField uint8

const (
	SentPacketNumber SentPacketField = iota
	SentPacketAckEliciting
	SentPacketInFlight
	SentPacketSentBytes
	SentPacketTimeSent
	SentPacketSourceAddress
	SentPacketDestinationAddress
)

// RcvPacketField addresses one attribute of a received-packet record.
type RcvPacketField uint8

const (
	RcvPacketSourceAddress RcvPacketField = iota
	RcvPacketDestinationAddress
)

// RangeSetField names an attribute of a range set.
type RangeSetField uint8

const (
	RangeSetLength RangeSetField = iota
)
