package hostapi

import (
	"github.com/core-quic/pluginop/pkg/pluginval"
	"github.com/core-quic/pluginop/pkg/quicfield"
)

// Connection abstracts the single connection a Host is bound to. The
// bytecode side never sees more than a field selector; the host resolves
// it against whatever concrete connection type it runs on top of. A
// selector/value type mismatch is the implementation's to report; hostapi
// surfaces it as BadType.
type Connection interface {
	GetField(field quicfield.ConnectionField) (pluginval.Value, error)
	SetField(field quicfield.ConnectionField, value pluginval.Value) error
	GenerateConnectionID() (quicfield.ConnectionID, error)
}

// Recovery abstracts the quic-recovery state attached to the connection.
type Recovery interface {
	GetField(field quicfield.RecoveryField) (pluginval.Value, error)
	SetField(field quicfield.RecoveryField, value pluginval.Value) error
}

// SentPackets answers get_sent_packet lookups against recovery's sent-packet
// bookkeeping.
type SentPackets interface {
	GetSentPacket(space quicfield.KPacketNumberSpace, packetNumber uint64, field quicfield.SentPacketField) (pluginval.Value, error)
}

// RcvPackets answers get_rcv_packet lookups against the packet currently
// being processed.
type RcvPackets interface {
	GetRcvPacket(field quicfield.RcvPacketField) (pluginval.Value, error)
}

// Registrations receives Init-time Registration declarations (spec §4.7:
// "register(reg)... Init only").
type Registrations interface {
	Register(module string, reg quicfield.Registration) error
}

// PrintSink receives print(s) diagnostic output. A host may elide it
// entirely (spec §4.7: "host may elide"), so a nil sink is valid.
type PrintSink interface {
	Print(module string, s string)
}
