// Package bufferreg implements the byte-buffer registry: a map from opaque
// 64-bit tags to bounded read/write views into host-owned byte regions,
// issued to modules in lieu of raw pointers (spec §4.2).
package bufferreg

import (
	"sync"

	"github.com/core-quic/pluginop/internal/errx"
)

// entry is one issued token's bookkeeping.
type entry struct {
	region   []byte
	maxRead  uint64
	maxWrite uint64
	frame    uint64
}

// Registry issues, bounds-checks, and revokes byte tokens. It lives for the
// duration of a dispatch call tree: tags issued within a reentrant frame are
// bulk-revoked when that frame pops (spec §4.2, §5).
type Registry struct {
	mu   sync.Mutex
	next uint64
	byTag map[uint64]*entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{byTag: make(map[uint64]*entry)}
}

// Issue mints a fresh tag bound to region, readable up to maxRead bytes and
// writable up to maxWrite bytes, scoped to frame. Tag 0 is never issued, so
// callers may use it as a sentinel for "no token".
func (r *Registry) Issue(region []byte, maxRead, maxWrite uint64, frame uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	tag := r.next
	r.byTag[tag] = &entry{region: region, maxRead: maxRead, maxWrite: maxWrite, frame: frame}
	return tag
}

// Read returns the first n bytes of the region behind tag. n must not exceed
// the token's max_read_len or the region's length; otherwise it errors.
func (r *Registry) Read(tag uint64, n uint64) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byTag[tag]
	if !ok {
		return nil, errx.With(ErrUnknownTag, ": tag %d", tag)
	}
	if n > e.maxRead {
		return nil, errx.With(ErrReadTooLarge, ": requested %d > max_read_len %d", n, e.maxRead)
	}
	if n > uint64(len(e.region)) {
		return nil, errx.With(ErrReadTooLarge, ": requested %d exceeds region length %d", n, len(e.region))
	}
	out := make([]byte, n)
	copy(out, e.region[:n])
	return out, nil
}

// Put writes data into the region behind tag, returning the number of bytes
// written. len(data) must not exceed the token's max_write_len.
func (r *Registry) Put(tag uint64, data []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byTag[tag]
	if !ok {
		return 0, errx.With(ErrUnknownTag, ": tag %d", tag)
	}
	if uint64(len(data)) > e.maxWrite {
		return 0, errx.With(ErrWriteTooLarge, ": payload %d > max_write_len %d", len(data), e.maxWrite)
	}
	if len(data) > len(e.region) {
		return 0, errx.With(ErrWriteTooLarge, ": payload %d exceeds region length %d", len(data), len(e.region))
	}
	n := copy(e.region, data)
	return n, nil
}

// Revoke invalidates tag immediately; subsequent Read/Put calls fail.
func (r *Registry) Revoke(tag uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byTag, tag)
}

// RevokeFrame bulk-revokes every tag issued with the given frame, called
// when the dispatch frame stack pops (spec §4.2: "at frame pop, every tag
// issued in that frame is revoked").
func (r *Registry) RevokeFrame(frame uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for tag, e := range r.byTag {
		if e.frame == frame {
			delete(r.byTag, tag)
		}
	}
}

// Valid reports whether tag is currently live, without consuming it.
func (r *Registry) Valid(tag uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byTag[tag]
	return ok
}
