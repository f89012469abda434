package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/core-quic/pluginop/pkg/config"
	"github.com/core-quic/pluginop/pkg/module"
)

func TestDefaultHandlerConfig_Valid(t *testing.T) {
	require.NoError(t, config.DefaultHandlerConfig().Validate())
}

func TestValidate_RejectsDepthCapBelowEight(t *testing.T) {
	cfg := config.DefaultHandlerConfig()
	cfg.ReentrancyDepthCap = 4

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "reentrancy_depth_cap")
}

func TestValidate_RejectsNonPositiveMaxEncodedValueBytes(t *testing.T) {
	cfg := config.DefaultHandlerConfig()
	cfg.MaxEncodedValueBytes = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "max_encoded_value_bytes")
}

func TestValidate_RejectsNegativeTimerResolution(t *testing.T) {
	cfg := config.DefaultHandlerConfig()
	cfg.TimerResolution = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "timer_resolution")
}

func TestMerge_OverridesOnlyNonZeroFields(t *testing.T) {
	base := config.DefaultHandlerConfig()
	override := &config.HandlerConfig{ReentrancyDepthCap: 16}

	merged := base.Merge(override)
	assert.Equal(t, 16, merged.ReentrancyDepthCap)
	assert.Equal(t, base.MaxEncodedValueBytes, merged.MaxEncodedValueBytes)
	assert.Equal(t, base.DefaultPermissions, merged.DefaultPermissions)
}

func TestMerge_NilOtherReturnsReceiver(t *testing.T) {
	base := config.DefaultHandlerConfig()
	assert.Same(t, base, base.Merge(nil))
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	base := config.DefaultHandlerConfig()
	_ = base.Merge(&config.HandlerConfig{ReentrancyDepthCap: 32})
	assert.Equal(t, config.DefaultReentrancyDepthCap, base.ReentrancyDepthCap)
}

func TestParseConfig_UnmarshalsAndValidates(t *testing.T) {
	cfg, err := config.ParseConfig([]byte(`{"reentrancy_depth_cap": 12, "max_encoded_value_bytes": 2048}`))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.ReentrancyDepthCap)
	assert.Equal(t, 2048, cfg.MaxEncodedValueBytes)
	assert.Equal(t, module.DefaultPermissions, cfg.DefaultPermissions)
}

func TestParseConfig_RejectsInvalidValues(t *testing.T) {
	_, err := config.ParseConfig([]byte(`{"reentrancy_depth_cap": 2}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestParseConfig_RejectsMalformedJSON(t *testing.T) {
	_, err := config.ParseConfig([]byte(`not json`))
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
