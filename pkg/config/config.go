// Package config defines the handler's tunable parameters and how they are
// loaded and merged, following the teacher's own Config/Merge/Validate
// shape (pkg/api/config.go).
package config

import (
	"encoding/json"
	"time"

	"github.com/core-quic/pluginop/internal/errx"
	"github.com/core-quic/pluginop/pkg/module"
)

const (
	DefaultReentrancyDepthCap   = 8
	DefaultMaxEncodedValueBytes = 1500
	DefaultTimerResolution      = 10 * time.Millisecond
)

// HandlerConfig tunes the dispatch engine and the modules loaded into it.
type HandlerConfig struct {
	// DefaultPermissions is carried through ParseConfig and Merge only;
	// module loading does not read it and always grants
	// module.DefaultPermissions.
	DefaultPermissions module.Permission `json:"default_permissions,omitempty"`
	// ReentrancyDepthCap bounds call_proto_op recursion; must be >= 8.
	ReentrancyDepthCap int `json:"reentrancy_depth_cap,omitempty"`
	// MaxEncodedValueBytes bounds a single Value Codec encoding.
	MaxEncodedValueBytes int `json:"max_encoded_value_bytes,omitempty"`
	// TimerResolution quantizes every SetTimer deadline up to its next
	// multiple, modeling a coarse timer wheel; <= 0 disables quantization.
	TimerResolution time.Duration `json:"timer_resolution,omitempty"`
}

// DefaultHandlerConfig returns the spec's minimums.
func DefaultHandlerConfig() *HandlerConfig {
	return &HandlerConfig{
		DefaultPermissions:   module.DefaultPermissions,
		ReentrancyDepthCap:   DefaultReentrancyDepthCap,
		MaxEncodedValueBytes: DefaultMaxEncodedValueBytes,
		TimerResolution:      DefaultTimerResolution,
	}
}

// Validate checks config invariants (spec §4.6: "Depth is bounded by a
// per-handler cap... must be >= 8"; spec §4.1: "Maximum encoded size of
// any single value is bounded by a compile-time constant").
func (c *HandlerConfig) Validate() error {
	if c.ReentrancyDepthCap < 8 {
		return errx.With(ErrInvalidConfig, ": reentrancy_depth_cap must be >= 8, got %d", c.ReentrancyDepthCap)
	}
	if c.MaxEncodedValueBytes <= 0 {
		return errx.With(ErrInvalidConfig, ": max_encoded_value_bytes must be positive, got %d", c.MaxEncodedValueBytes)
	}
	if c.TimerResolution < 0 {
		return errx.With(ErrInvalidConfig, ": timer_resolution must not be negative, got %s", c.TimerResolution)
	}
	return nil
}

// Merge overlays other's non-zero fields onto a copy of c.
func (c *HandlerConfig) Merge(other *HandlerConfig) *HandlerConfig {
	if other == nil {
		return c
	}
	result := *c
	if other.DefaultPermissions != 0 {
		result.DefaultPermissions = other.DefaultPermissions
	}
	if other.ReentrancyDepthCap > 0 {
		result.ReentrancyDepthCap = other.ReentrancyDepthCap
	}
	if other.MaxEncodedValueBytes > 0 {
		result.MaxEncodedValueBytes = other.MaxEncodedValueBytes
	}
	if other.TimerResolution > 0 {
		result.TimerResolution = other.TimerResolution
	}
	return &result
}

// ParseConfig decodes data as JSON, overlays it onto the defaults, and
// validates the result.
func ParseConfig(data []byte) (*HandlerConfig, error) {
	var cfg HandlerConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, errx.With(ErrInvalidConfig, ": %w", err)
	}
	merged := DefaultHandlerConfig().Merge(&cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
