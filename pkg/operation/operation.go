// Package operation implements the protocol-operation namespace: the
// bijection between a module export name and an (Operation, Anchor) pair.
package operation

import (
	"strconv"
	"strings"

	"github.com/core-quic/pluginop/internal/errx"
)

// Kind identifies an operation family. The integer value has no external
// meaning; only (Kind, Param) together identify an Operation.
type Kind int

const (
	KindInit Kind = iota
	KindTest
	KindProcessVersionNegotiation
	KindGetPacketToSend
	KindDecryptPacket
	KindOnPacketProcessed
	KindOnPacketSent
	KindSetLossDetectionTimer
	KindUpdateRtt

	KindPluginControl
	KindOnPluginTimeout
	KindDecodeTransportParameter
	KindWriteTransportParameter
	KindLogFrame
	KindNotifyFrame
	KindOnFrameReserved
	KindParseFrame
	KindPrepareFrame
	KindProcessFrame
	KindShouldSendFrame
	KindWireLen
	KindWriteFrame

	KindProcessLongHeader
	KindProcessShortHeader

	KindOther
)

// Operation is a tagged identifier naming a decision point. Comparable, so
// it can key a map directly (the anchor table, the default registry).
type Operation struct {
	Kind  Kind     `cbor:"kind"`
	Param uint64   `cbor:"param,omitempty"` // meaningful for the parameterized families
	Other [32]byte `cbor:"other,omitempty"` // meaningful only when Kind == KindOther
}

// Anchor is the timing of a module contribution relative to the operation
// body. Its ordinal (0/1/2) is stable and used for table indexing.
type Anchor int

const (
	Before Anchor = iota
	Replace
	After
)

func (a Anchor) String() string {
	switch a {
	case Before:
		return "before"
	case Replace:
		return "replace"
	case After:
		return "after"
	default:
		return "unknown"
	}
}

var zeroParamFamilies = map[string]Kind{
	"init":                          KindInit,
	"test":                          KindTest,
	"process_version_negotiation":   KindProcessVersionNegotiation,
	"get_packet_to_send":            KindGetPacketToSend,
	"decrypt_packet":                KindDecryptPacket,
	"on_packet_processed":           KindOnPacketProcessed,
	"on_packet_sent":                KindOnPacketSent,
	"set_loss_detection_timer":      KindSetLossDetectionTimer,
	"update_rtt":                    KindUpdateRtt,
}

var sixtyFourBitFamilies = map[string]Kind{
	"plugin_control":              KindPluginControl,
	"on_plugin_timeout":           KindOnPluginTimeout,
	"decode_transport_parameter":  KindDecodeTransportParameter,
	"write_transport_parameter":   KindWriteTransportParameter,
	"log_frame":                   KindLogFrame,
	"notify_frame":                KindNotifyFrame,
	"on_frame_reserved":           KindOnFrameReserved,
	"parse_frame":                 KindParseFrame,
	"prepare_frame":                KindPrepareFrame,
	"process_frame":               KindProcessFrame,
	"should_send_frame":           KindShouldSendFrame,
	"wire_len":                    KindWireLen,
	"write_frame":                 KindWriteFrame,
}

var thirtyTwoBitFamilies = map[string]Kind{
	"process_long_header":  KindProcessLongHeader,
	"process_short_header": KindProcessShortHeader,
}

// AlwaysEnabled reports whether op may be dispatched into a module that has
// not finished initialization.
func (op Operation) AlwaysEnabled() bool {
	switch op.Kind {
	case KindInit, KindDecodeTransportParameter, KindWriteTransportParameter:
		return true
	default:
		return false
	}
}

// splitSuffix splits s at its last underscore, returning the prefix and the
// hex suffix. ok is false if there is no underscore to split on.
func splitSuffix(s string) (prefix, suffix string, ok bool) {
	i := strings.LastIndexByte(s, '_')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// FromName implements the operation-name grammar of spec §3/§4.4: an
// optional pre_/before_ or post_/after_ prefix selects the Anchor, the
// remainder selects the family, and parameterized families consume the
// substring after the last underscore as a hex parameter.
//
// Unlike the reference implementation this never panics: an unparseable hex
// suffix against a recognized parameterized family is a soft load-time
// error, and names (after anchor-prefix stripping) longer than 32 bytes are
// rejected rather than silently truncated.
func FromName(name string) (Operation, Anchor, error) {
	anchor := Replace
	remainder := name
	switch {
	case strings.HasPrefix(name, "pre_"):
		anchor, remainder = Before, name[len("pre_"):]
	case strings.HasPrefix(name, "before_"):
		anchor, remainder = Before, name[len("before_"):]
	case strings.HasPrefix(name, "post_"):
		anchor, remainder = After, name[len("post_"):]
	case strings.HasPrefix(name, "after_"):
		anchor, remainder = After, name[len("after_"):]
	}

	if kind, ok := zeroParamFamilies[remainder]; ok {
		return Operation{Kind: kind}, anchor, nil
	}

	if prefix, suffix, ok := splitSuffix(remainder); ok {
		if kind, ok := thirtyTwoBitFamilies[prefix]; ok {
			v, err := strconv.ParseUint(suffix, 16, 32)
			if err != nil {
				return Operation{}, anchor, errx.With(ErrMalformedParameter, " %q: %w", name, err)
			}
			return Operation{Kind: kind, Param: v}, anchor, nil
		}
		if kind, ok := sixtyFourBitFamilies[prefix]; ok {
			v, err := strconv.ParseUint(suffix, 16, 64)
			if err != nil {
				return Operation{}, anchor, errx.With(ErrMalformedParameter, " %q: %w", name, err)
			}
			return Operation{Kind: kind, Param: v}, anchor, nil
		}
	}

	if len(remainder) > 32 {
		return Operation{}, anchor, errx.With(ErrNameTooLong, " %q is %d bytes", remainder, len(remainder))
	}
	var other [32]byte
	copy(other[:], remainder)
	return Operation{Kind: KindOther, Other: other}, anchor, nil
}
