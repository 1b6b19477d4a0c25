package branches

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/devhandbook/branchctl/internal/gitrepo"
	flagutils "github.com/devhandbook/branchctl/internal/utils/flags"
	pathutils "github.com/devhandbook/branchctl/internal/utils/path"
)

const (
	switchCommandUseConstant              = "switch <branch-name>"
	switchCommandShortDescriptionConstant = "Switch to a branch, creating it when absent"
	switchCommandLongDescriptionConstant  = "switch checks out the named branch, creating it at the current HEAD first when no local branch with that name exists."
	switchExecutionErrorTemplateConstant  = "branch switch failed: %w"
	switchedMessageConstant               = "switched to branch"
	switchCreatedFieldConstant            = "branch_created"

	currentCommandUseConstant              = "current"
	currentCommandShortDescriptionConstant = "Print the name of the currently checked-out branch"
	currentCommandLongDescriptionConstant  = "current prints the checked-out branch name, or \"unknown\" when the repository HEAD is detached."
	currentExecutionErrorTemplateConstant  = "current branch lookup failed: %w"

	statusCommandUseConstant              = "status"
	statusCommandShortDescriptionConstant = "Report whether the working directory is clean"
	statusCommandLongDescriptionConstant  = "status inspects the working directory and reports whether any staged, unstaged, or untracked changes are present."
	statusExecutionErrorTemplateConstant  = "worktree status check failed: %w"
	statusCleanOutputConstant             = "clean"
	statusDirtyOutputConstant             = "dirty"

	branchNameArgumentCountConstant    = 1
	unexpectedArgumentsMessageConstant = "command does not accept positional arguments"

	flagRepositoryNameConstant        = "repository"
	flagRepositoryDescriptionConstant = "Path to the repository working copy"
	flagBackendNameConstant           = "backend"
	flagBackendDescriptionConstant    = "Repository backend used to run git operations"
	flagRequireCleanNameConstant      = "require-clean"
	flagRequireCleanDescription       = "Refuse to switch branches when the worktree has pending changes"

	defaultRepositoryPathConstant = "."
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the resolved branch command configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-formatted logging is active.
type HumanReadableLoggingProvider func() bool

// SwitchCommandBuilder assembles the Cobra command for create-or-checkout branch switching.
type SwitchCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	RepositoryManager            gitrepo.RepositoryManager

	requireCleanFlagValue bool
}

// Build constructs the switch command.
func (builder *SwitchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   switchCommandUseConstant,
		Short: switchCommandShortDescriptionConstant,
		Long:  switchCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(branchNameArgumentCountConstant),
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments)
		},
	}

	registerRepositoryFlags(command, builder.configuration())
	flagutils.AddToggleFlag(command.Flags(), &builder.requireCleanFlagValue, flagRequireCleanNameConstant, "", builder.configuration().RequireClean, flagRequireCleanDescription)

	return command, nil
}

func (builder *SwitchCommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := resolveLogger(builder.LoggerProvider)

	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	service, serviceError := resolveService(builder.RepositoryManager, options.backend, logger, humanReadableLoggingEnabled(builder.HumanReadableLoggingProvider))
	if serviceError != nil {
		return serviceError
	}

	ensureResult, ensureError := service.EnsureBranch(command.Context(), EnsureOptions{
		RepositoryPath: options.repositoryPath,
		BranchName:     options.branchName,
		RequireClean:   options.requireClean,
	})
	if ensureError != nil {
		return fmt.Errorf(switchExecutionErrorTemplateConstant, ensureError)
	}

	logger.Info(
		switchedMessageConstant,
		zap.String(logFieldRepositoryPathConstant, ensureResult.RepositoryPath),
		zap.String(logFieldBranchNameConstant, ensureResult.BranchName),
		zap.Bool(switchCreatedFieldConstant, ensureResult.BranchCreated),
	)

	return nil
}

type commandOptions struct {
	repositoryPath string
	branchName     string
	backend        string
	requireClean   bool
}

func (builder *SwitchCommandBuilder) parseOptions(command *cobra.Command, arguments []string) (commandOptions, error) {
	options := parseRepositoryOptions(command, builder.configuration())
	options.branchName = strings.TrimSpace(arguments[0])
	if command.Flags().Changed(flagRequireCleanNameConstant) {
		options.requireClean = builder.requireCleanFlagValue
	}

	return options, nil
}

func (builder *SwitchCommandBuilder) configuration() CommandConfiguration {
	return resolveConfiguration(builder.ConfigurationProvider)
}

// CurrentCommandBuilder assembles the Cobra command printing the current branch name.
type CurrentCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	RepositoryManager            gitrepo.RepositoryManager
}

// Build constructs the current command.
func (builder *CurrentCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   currentCommandUseConstant,
		Short: currentCommandShortDescriptionConstant,
		Long:  currentCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments)
		},
	}

	registerRepositoryFlags(command, resolveConfiguration(builder.ConfigurationProvider))

	return command, nil
}

func (builder *CurrentCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := resolveLogger(builder.LoggerProvider)
	options := parseRepositoryOptions(command, resolveConfiguration(builder.ConfigurationProvider))

	service, serviceError := resolveService(builder.RepositoryManager, options.backend, logger, humanReadableLoggingEnabled(builder.HumanReadableLoggingProvider))
	if serviceError != nil {
		return serviceError
	}

	branchName, branchError := service.CurrentBranchName(command.Context(), options.repositoryPath)
	if branchError != nil {
		return fmt.Errorf(currentExecutionErrorTemplateConstant, branchError)
	}

	fmt.Fprintln(command.OutOrStdout(), branchName)
	return nil
}

// StatusCommandBuilder assembles the Cobra command reporting worktree cleanliness.
type StatusCommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	RepositoryManager            gitrepo.RepositoryManager
}

// Build constructs the status command.
func (builder *StatusCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   statusCommandUseConstant,
		Short: statusCommandShortDescriptionConstant,
		Long:  statusCommandLongDescriptionConstant,
		RunE: func(command *cobra.Command, arguments []string) error {
			return builder.run(command, arguments)
		},
	}

	registerRepositoryFlags(command, resolveConfiguration(builder.ConfigurationProvider))

	return command, nil
}

func (builder *StatusCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	logger := resolveLogger(builder.LoggerProvider)
	options := parseRepositoryOptions(command, resolveConfiguration(builder.ConfigurationProvider))

	service, serviceError := resolveService(builder.RepositoryManager, options.backend, logger, humanReadableLoggingEnabled(builder.HumanReadableLoggingProvider))
	if serviceError != nil {
		return serviceError
	}

	clean, cleanError := service.IsWorkingDirectoryClean(command.Context(), options.repositoryPath)
	if cleanError != nil {
		return fmt.Errorf(statusExecutionErrorTemplateConstant, cleanError)
	}

	if !clean {
		fmt.Fprintln(command.OutOrStdout(), statusDirtyOutputConstant)
		return ErrWorktreeNotClean
	}

	fmt.Fprintln(command.OutOrStdout(), statusCleanOutputConstant)
	return nil
}

func registerRepositoryFlags(command *cobra.Command, configuration CommandConfiguration) {
	command.Flags().String(flagRepositoryNameConstant, configuration.Repository, flagRepositoryDescriptionConstant)
	command.Flags().String(
		flagBackendNameConstant,
		configuration.Backend,
		flagutils.FormatChoiceUsage(configuration.Backend, SupportedBackends, flagBackendDescriptionConstant),
	)
}

func parseRepositoryOptions(command *cobra.Command, configuration CommandConfiguration) commandOptions {
	sanitizedConfiguration := configuration.sanitize()

	repositoryValue, _ := command.Flags().GetString(flagRepositoryNameConstant)
	trimmedRepository := strings.TrimSpace(repositoryValue)
	if len(trimmedRepository) == 0 {
		trimmedRepository = sanitizedConfiguration.Repository
	}
	if len(trimmedRepository) == 0 {
		trimmedRepository = defaultRepositoryPathConstant
	}

	backendValue, _ := command.Flags().GetString(flagBackendNameConstant)
	trimmedBackend := strings.ToLower(strings.TrimSpace(backendValue))
	if len(trimmedBackend) == 0 {
		trimmedBackend = sanitizedConfiguration.Backend
	}

	return commandOptions{
		repositoryPath: pathutils.NewHomeExpander().Expand(trimmedRepository),
		backend:        trimmedBackend,
		requireClean:   sanitizedConfiguration.RequireClean,
	}
}

func resolveConfiguration(configurationProvider ConfigurationProvider) CommandConfiguration {
	if configurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return configurationProvider()
}

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}

	logger := loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func humanReadableLoggingEnabled(provider HumanReadableLoggingProvider) bool {
	if provider == nil {
		return false
	}
	return provider()
}

func resolveService(existingManager gitrepo.RepositoryManager, backend string, logger *zap.Logger, humanReadableLogging bool) (*Service, error) {
	repositoryManager, managerError := ResolveRepositoryManager(existingManager, backend, logger, humanReadableLogging)
	if managerError != nil {
		return nil, managerError
	}

	return NewService(ServiceDependencies{RepositoryManager: repositoryManager, Logger: logger})
}
