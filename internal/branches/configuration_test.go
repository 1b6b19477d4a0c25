package branches_test

import (
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/stretchr/testify/require"

	"github.com/devhandbook/branchctl/internal/branches"
)

func TestDefaultConfigurationValuesUsePrefix(testInstance *testing.T) {
	defaults := branches.DefaultConfigurationValues("tools.branch")

	require.Equal(testInstance, branches.BackendCLI, defaults["tools.branch.backend"])
	require.Equal(testInstance, "", defaults["tools.branch.repository"])
	require.Equal(testInstance, false, defaults["tools.branch.require_clean"])
}

func TestCommandConfigurationDecodesFromSettingsMap(testInstance *testing.T) {
	settings := map[string]any{
		"backend":       branches.BackendNative,
		"repository":    "~/projects/service",
		"require_clean": true,
	}

	configuration := branches.CommandConfiguration{}
	decodeError := mapstructure.Decode(settings, &configuration)
	require.NoError(testInstance, decodeError)

	require.Equal(testInstance, branches.BackendNative, configuration.Backend)
	require.Equal(testInstance, "~/projects/service", configuration.Repository)
	require.True(testInstance, configuration.RequireClean)
}

func TestDefaultCommandConfigurationSelectsCLIBackend(testInstance *testing.T) {
	configuration := branches.DefaultCommandConfiguration()

	require.Equal(testInstance, branches.BackendCLI, configuration.Backend)
	require.False(testInstance, configuration.RequireClean)
}
