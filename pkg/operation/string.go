package operation

import "fmt"

var kindNames = map[Kind]string{
	KindInit:                     "init",
	KindTest:                     "test",
	KindProcessVersionNegotiation: "process_version_negotiation",
	KindGetPacketToSend:          "get_packet_to_send",
	KindDecryptPacket:            "decrypt_packet",
	KindOnPacketProcessed:        "on_packet_processed",
	KindOnPacketSent:             "on_packet_sent",
	KindSetLossDetectionTimer:    "set_loss_detection_timer",
	KindUpdateRtt:                "update_rtt",
	KindPluginControl:            "plugin_control",
	KindOnPluginTimeout:          "on_plugin_timeout",
	KindDecodeTransportParameter: "decode_transport_parameter",
	KindWriteTransportParameter:  "write_transport_parameter",
	KindLogFrame:                 "log_frame",
	KindNotifyFrame:              "notify_frame",
	KindOnFrameReserved:          "on_frame_reserved",
	KindParseFrame:               "parse_frame",
	KindPrepareFrame:             "prepare_frame",
	KindProcessFrame:             "process_frame",
	KindShouldSendFrame:          "should_send_frame",
	KindWireLen:                  "wire_len",
	KindWriteFrame:               "write_frame",
	KindProcessLongHeader:        "process_long_header",
	KindProcessShortHeader:       "process_short_header",
	KindOther:                    "other",
}

// String renders the operation in a form resembling its export-name family,
// for logs and error messages. It is not accepted back by FromName.
func (op Operation) String() string {
	name := kindNames[op.Kind]
	switch op.Kind {
	case KindOther:
		n := 0
		for n < len(op.Other) && op.Other[n] != 0 {
			n++
		}
		return fmt.Sprintf("other(%q)", string(op.Other[:n]))
	case KindInit, KindTest, KindProcessVersionNegotiation, KindGetPacketToSend,
		KindDecryptPacket, KindOnPacketProcessed, KindOnPacketSent,
		KindSetLossDetectionTimer, KindUpdateRtt:
		return name
	default:
		return fmt.Sprintf("%s(0x%x)", name, op.Param)
	}
}
