package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/core-quic/pluginop/pkg/logging"
	"github.com/core-quic/pluginop/pkg/operation"
	"github.com/core-quic/pluginop/pkg/pluginval"
)

// timerKey scopes a timer id to the module that armed it (spec §4.7:
// "identifiers are module-scoped").
type timerKey struct {
	module string
	id     uint64
}

type timerSet struct {
	deadlines  map[timerKey]time.Time
	resolution time.Duration
}

func newTimerSet(resolution time.Duration) timerSet {
	return timerSet{deadlines: make(map[timerKey]time.Time), resolution: resolution}
}

// quantize rounds deadline up to the next multiple of resolution, modeling
// a coarse timer wheel; resolution <= 0 disables quantization.
func quantize(deadline time.Time, resolution time.Duration) time.Time {
	if resolution <= 0 {
		return deadline
	}
	rem := deadline.UnixNano() % int64(resolution)
	if rem == 0 {
		return deadline
	}
	return deadline.Add(resolution - time.Duration(rem))
}

// SetTimer arms a wall-clock timer (spec §4.7: "set_timer(ts,id,cb)"),
// overwriting any existing timer under the same (module, id). The deadline
// is quantized to the handler's configured TimerResolution.
func (h *Handler) SetTimer(module string, id uint64, deadline time.Time) {
	deadline = quantize(deadline, h.timers.resolution)
	h.mu.Lock()
	h.timers.deadlines[timerKey{module, id}] = deadline
	h.mu.Unlock()
	h.emitTimer(logging.EventTimerArmed, module, id, deadline)
}

// CancelTimer disarms a timer. Cancelling an unknown id is a no-op
// (spec §4.7: "cancel_timer on an unknown id is a no-op").
func (h *Handler) CancelTimer(module string, id uint64) {
	k := timerKey{module, id}
	h.mu.Lock()
	_, existed := h.timers.deadlines[k]
	delete(h.timers.deadlines, k)
	h.mu.Unlock()
	if existed {
		h.emitTimer(logging.EventTimerCanceled, module, id, time.Time{})
	}
}

// Tick fires every timer whose deadline has elapsed as of now, dispatching
// OnPluginTimeout(id) with no arguments (spec §4.7, §5: "the host
// dispatches OnPluginTimeout(id)... on the next executor tick"). It finds
// and disarms one due timer at a time, earliest deadline first (ties by
// module name, then id), rather than collecting them all upfront, so a
// handler that cancels a sibling timer due later in this same Tick is
// honored instead of racing an already-collected fire list.
func (h *Handler) Tick(ctx context.Context, now time.Time) []error {
	var errs []error
	for {
		k, ok := h.popDueTimer(now)
		if !ok {
			break
		}
		h.emitTimer(logging.EventTimerFired, k.module, k.id, now)
		op := operation.Operation{Kind: operation.KindOnPluginTimeout, Param: k.id}
		if _, err := h.Call(ctx, op, []pluginval.Value{}); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// popDueTimer finds the timer with the earliest deadline that has elapsed
// as of now (ties broken by module name, then id), deletes it, and returns
// its key. It reports false once none remain due.
func (h *Handler) popDueTimer(now time.Time) (timerKey, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var best timerKey
	var bestDeadline time.Time
	found := false
	for k, deadline := range h.timers.deadlines {
		if now.Before(deadline) {
			continue
		}
		if !found || deadline.Before(bestDeadline) || (deadline.Equal(bestDeadline) &&
			(k.module < best.module || (k.module == best.module && k.id < best.id))) {
			best, bestDeadline, found = k, deadline, true
		}
	}
	if found {
		delete(h.timers.deadlines, best)
	}
	return best, found
}

func (h *Handler) emitTimer(eventType, module string, id uint64, deadline time.Time) {
	if h.Emitter == nil {
		return
	}
	data := &logging.TimerData{Module: module, TimerID: id}
	if !deadline.IsZero() {
		data.DeadlineS = deadline.Unix()
	}
	_ = h.Emitter.Emit(eventType, fmt.Sprintf("%s: %s/%d", eventType, module, id), module, nil, data)
}
