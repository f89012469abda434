// Package clock supplies the two time sources the Host Capability API
// exposes to modules: a monotonic clock for get_current_time and a
// wall clock for get_time (spec §4.7).
package clock

import (
	"time"

	"golang.org/x/sys/unix"

	"github.com/core-quic/pluginop/pkg/quicfield"
)

// Source is the pair of clocks a Host reads from.
type Source interface {
	// Monotonic returns a reading from CLOCK_MONOTONIC, as seconds+nanos
	// since an unspecified, fixed epoch (spec §4.1: "instants as
	// seconds+nanos since a fixed epoch").
	Monotonic() quicfield.UnixInstant
	// Wall returns the current UTC wall-clock time in the same encoding.
	Wall() quicfield.UnixInstant
}

// System reads the host OS's clocks directly.
type System struct{}

func (System) Monotonic() quicfield.UnixInstant {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return quicfield.UnixInstant{}
	}
	return quicfield.UnixInstant{Seconds: int64(ts.Sec), Nanoseconds: uint32(ts.Nsec)}
}

func (System) Wall() quicfield.UnixInstant {
	now := time.Now().UTC()
	return quicfield.UnixInstant{Seconds: now.Unix(), Nanoseconds: uint32(now.Nanosecond())}
}

// Fixed is a deterministic Source for tests: Monotonic and Wall return
// MonoValue and WallValue respectively, frozen at construction.
type Fixed struct {
	MonoValue quicfield.UnixInstant
	WallValue quicfield.UnixInstant
}

func (f Fixed) Monotonic() quicfield.UnixInstant { return f.MonoValue }
func (f Fixed) Wall() quicfield.UnixInstant      { return f.WallValue }
