package main

import (
	"github.com/core-quic/pluginop/pkg/operation"
)

// zeroParamOperationNames lists the operation export-name families that take
// no numeric parameter. The demo modules only ever export these, so this is
// all cmd_load/cmd_ops need to resolve a printable operation table; the
// parameterized families (frame/transport-parameter kinds, keyed by a hex
// suffix) aren't reachable from any built-in demo module.
var zeroParamOperationNames = []string{
	"init",
	"test",
	"process_version_negotiation",
	"get_packet_to_send",
	"decrypt_packet",
	"on_packet_processed",
	"on_packet_sent",
	"set_loss_detection_timer",
	"update_rtt",
}

// allKnownOperations resolves zeroParamOperationNames into Operation values,
// for probing a module or handler's operation table one anchor at a time.
func allKnownOperations() []operation.Operation {
	ops := make([]operation.Operation, 0, len(zeroParamOperationNames))
	for _, name := range zeroParamOperationNames {
		op, _, err := operation.FromName(name)
		if err != nil {
			continue
		}
		ops = append(ops, op)
	}
	return ops
}
