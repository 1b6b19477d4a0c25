package branches

import "strings"

const (
	// BackendCLI selects the git binary backend.
	BackendCLI = "cli"
	// BackendNative selects the go-git library backend.
	BackendNative = "native"

	backendConfigurationKeySuffixConstant      = ".backend"
	repositoryConfigurationKeySuffixConstant   = ".repository"
	requireCleanConfigurationKeySuffixConstant = ".require_clean"
)

// SupportedBackends lists the recognized repository backend identifiers.
var SupportedBackends = []string{BackendCLI, BackendNative}

// CommandConfiguration captures configuration values shared by the branch commands.
type CommandConfiguration struct {
	Backend      string `mapstructure:"backend"`
	Repository   string `mapstructure:"repository"`
	RequireClean bool   `mapstructure:"require_clean"`
}

// DefaultCommandConfiguration provides baseline configuration values for branch commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Backend:      BackendCLI,
		Repository:   "",
		RequireClean: false,
	}
}

// DefaultConfigurationValues exposes the command defaults keyed under the provided configuration prefix.
func DefaultConfigurationValues(configurationPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationPrefix + backendConfigurationKeySuffixConstant:      defaults.Backend,
		configurationPrefix + repositoryConfigurationKeySuffixConstant:   defaults.Repository,
		configurationPrefix + requireCleanConfigurationKeySuffixConstant: defaults.RequireClean,
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.Backend = strings.ToLower(strings.TrimSpace(configuration.Backend))
	sanitized.Repository = strings.TrimSpace(configuration.Repository)

	return sanitized
}
