// Package opaquestore implements the legacy opaque store: a single map
// keyed by (module, tag) to a 32-bit host-managed cookie (spec §4.3). New
// modules are expected to use module-local static memory instead; this
// exists so pre-static modules can keep a pointer-sized cookie across
// invocations.
package opaquestore

import (
	"sync"

	"github.com/core-quic/pluginop/internal/errx"
)

type key struct {
	module string
	tag    uint64
}

// Store is a (module, tag) -> uint32 map.
type Store struct {
	mu   sync.Mutex
	vals map[key]uint32
}

// New returns an empty Store.
func New() *Store {
	return &Store{vals: make(map[key]uint32)}
}

// Store records val under (module, tag), overwriting any prior value.
func (s *Store) Store(module string, tag uint64, val uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[key{module, tag}] = val
}

// Get returns the value stored under (module, tag).
func (s *Store) Get(module string, tag uint64) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vals[key{module, tag}]
	if !ok {
		return 0, errx.With(ErrNotFound, ": module %q tag %d", module, tag)
	}
	return v, nil
}

// Remove deletes the value stored under (module, tag), if any.
func (s *Store) Remove(module string, tag uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vals, key{module, tag})
}
