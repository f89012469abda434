package config

import "errors"

// ErrInvalidConfig is returned by Validate and ParseConfig when a HandlerConfig
// violates a dispatch-engine invariant.
var ErrInvalidConfig = errors.New("config: invalid handler configuration")
