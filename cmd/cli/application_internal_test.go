package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/devhandbook/branchctl/internal/branches"
)

const testConfigurationFileNameConstant = "config.yaml"

func writeConfigurationFixture(testInstance *testing.T, configurationDocument map[string]any) string {
	testInstance.Helper()

	configurationContent, marshalError := yaml.Marshal(configurationDocument)
	require.NoError(testInstance, marshalError)

	configurationFilePath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, configurationContent, 0o600))

	return configurationFilePath
}

func TestNewApplicationRegistersBranchCommands(testInstance *testing.T) {
	application := NewApplication()

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range application.rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}

	require.True(testInstance, registeredCommandNames["switch"])
	require.True(testInstance, registeredCommandNames["current"])
	require.True(testInstance, registeredCommandNames["status"])
}

func TestInitializeConfigurationAppliesEmbeddedDefaults(testInstance *testing.T) {
	application := NewApplication()

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, branches.BackendCLI, application.configuration.Tools.Branch.Backend)
	require.False(testInstance, application.configuration.Tools.Branch.RequireClean)
	require.False(testInstance, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationReadsConfigurationFile(testInstance *testing.T) {
	configurationFilePath := writeConfigurationFixture(testInstance, map[string]any{
		"common": map[string]any{
			"log_level":  "debug",
			"log_format": "console",
		},
		"tools": map[string]any{
			"branch": map[string]any{
				"backend":       branches.BackendNative,
				"repository":    "/srv/repositories/service",
				"require_clean": true,
			},
		},
	})

	application := NewApplication()
	application.configurationFilePath = configurationFilePath

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "debug", application.configuration.Common.LogLevel)
	require.True(testInstance, application.humanReadableLoggingEnabled())

	branchConfiguration := application.branchConfigurationProvider()
	require.Equal(testInstance, branches.BackendNative, branchConfiguration.Backend)
	require.Equal(testInstance, "/srv/repositories/service", branchConfiguration.Repository)
	require.True(testInstance, branchConfiguration.RequireClean)

	require.Equal(testInstance, configurationFilePath, application.configurationMetadata.ConfigFileUsed)
}

func TestInitializeConfigurationHonorsEnvironmentOverrides(testInstance *testing.T) {
	testInstance.Setenv("BRANCHCTL_TOOLS_BRANCH_BACKEND", branches.BackendNative)

	application := NewApplication()

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))
	require.Equal(testInstance, branches.BackendNative, application.configuration.Tools.Branch.Backend)
}

func TestInitializeConfigurationPrefersPersistentFlagOverrides(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "warn"))
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logFormatFlagNameConstant, "console"))

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "warn", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.True(testInstance, application.humanReadableLoggingEnabled())
}

func TestInitializeConfigurationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	application := NewApplication()
	require.NoError(testInstance, application.rootCommand.PersistentFlags().Set(logLevelFlagNameConstant, "verbose"))

	initializationError := application.initializeConfiguration(application.rootCommand)
	require.Error(testInstance, initializationError)
	require.Contains(testInstance, initializationError.Error(), "unable to create logger")
}

func TestInitializeConfigurationAttachesConfigurationFilePathToContext(testInstance *testing.T) {
	configurationFilePath := writeConfigurationFixture(testInstance, map[string]any{
		"common": map[string]any{
			"log_level": "info",
		},
	})

	application := NewApplication()
	application.configurationFilePath = configurationFilePath

	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	attachedFilePath, available := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
	require.True(testInstance, available)
	require.Equal(testInstance, configurationFilePath, attachedFilePath)
}
