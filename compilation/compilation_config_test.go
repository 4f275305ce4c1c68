package compilation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultPlatformConfigs ensures a default config can be created for every supported platform and that it
// round-trips its platform-specific settings.
func TestDefaultPlatformConfigs(t *testing.T) {
	for _, platform := range GetSupportedCompilationPlatforms() {
		config, err := NewCompilationConfig(platform)
		require.NoError(t, err)
		assert.EqualValues(t, platform, config.Platform)

		platformConfig, err := config.GetPlatformConfig()
		require.NoError(t, err)
		assert.EqualValues(t, platform, platformConfig.Platform())
	}
}

// TestUnsupportedPlatform ensures config creation fails for platforms without a registered generator.
func TestUnsupportedPlatform(t *testing.T) {
	_, err := NewCompilationConfig("unsupported_platform")
	assert.Error(t, err)
}

// TestSetTarget ensures a target set on the wrapper config is reflected in the underlying platform config.
func TestSetTarget(t *testing.T) {
	config, err := NewCompilationConfig("solc")
	require.NoError(t, err)

	err = config.SetTarget("contracts/invariants.sol")
	require.NoError(t, err)

	platformConfig, err := config.GetPlatformConfig()
	require.NoError(t, err)
	assert.EqualValues(t, "contracts/invariants.sol", platformConfig.GetTarget())
}
