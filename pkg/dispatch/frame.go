package dispatch

import "github.com/core-quic/pluginop/pkg/pluginval"

// Frame is one entry in the dispatch frame stack: the argument view and
// accumulated output of a single Call, including its reentrant children
// (spec §4.6 step 1: "push a dispatch frame capturing the previous
// argument view").
type Frame struct {
	ID      uint32
	TraceID string // minted per Call, threaded into hook-failure errors for log correlation
	Args    []pluginval.Value
	Output  []pluginval.Value
}

// Input returns the i-th argument of this frame, for get_input.
func (f *Frame) Input(i int) (pluginval.Value, bool) {
	if i < 0 || i >= len(f.Args) {
		return pluginval.Value{}, false
	}
	return f.Args[i], true
}

// SaveOutput appends v to the frame's result vector (save_output).
func (f *Frame) SaveOutput(v pluginval.Value) {
	f.Output = append(f.Output, v)
}

// SaveOutputs replaces the frame's result vector wholesale (save_outputs).
func (f *Frame) SaveOutputs(vs []pluginval.Value) {
	f.Output = vs
}
