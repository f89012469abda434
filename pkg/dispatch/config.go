package dispatch

import "github.com/core-quic/pluginop/pkg/config"

// Config tunes dispatch-engine behavior. It is an alias of
// config.HandlerConfig rather than a parallel struct, so a Handler built
// from a JSON/flag-loaded HandlerConfig and one built with a bare literal
// (dispatch.Config{ReentrancyDepthCap: 2}, as in tests) are the same type.
type Config = config.HandlerConfig

// DefaultConfig returns the spec's minimums.
func DefaultConfig() Config {
	return *config.DefaultHandlerConfig()
}
