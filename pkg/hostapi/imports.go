package hostapi

import "github.com/core-quic/pluginop/pkg/runtime"

// Imports returns the runtime.Imports table a module is instantiated
// against, binding every capability under its stable import name.
func (h *Host) Imports() runtime.Imports {
	return runtime.Imports{
		"save_output_from_plugin":            h.SaveOutput,
		"save_outputs_from_plugin":           h.SaveOutputs,
		"store_opaque_from_plugin":           h.StoreOpaque,
		"get_opaque_from_plugin":             h.GetOpaque,
		"remove_opaque_from_plugin":          h.RemoveOpaque,
		"print_from_plugin":                  h.Print,
		"get_connection_from_plugin":         h.GetConnection,
		"set_connection_from_plugin":         h.SetConnection,
		"get_recovery_from_plugin":           h.GetRecovery,
		"set_recovery_from_plugin":           h.SetRecovery,
		"get_sent_packet_from_plugin":        h.GetSentPacket,
		"get_rcv_packet_from_plugin":         h.GetRcvPacket,
		"get_input_from_plugin":              h.GetInput,
		"get_inputs_from_plugin":             h.GetInputs,
		"buffer_get_bytes_from_plugin":       h.BufferGetBytes,
		"buffer_put_bytes_from_plugin":       h.BufferPutBytes,
		"call_proto_op_from_plugin":          h.CallProtoOp,
		"get_current_time_from_plugin":       h.GetCurrentTime,
		"get_time_from_plugin":               h.GetTime,
		"register_from_plugin":               h.Register,
		"generate_connection_id_from_plugin": h.GenerateConnectionID,
		"set_timer_from_plugin":              h.SetTimer,
		"cancel_timer_from_plugin":           h.CancelTimer,
	}
}
