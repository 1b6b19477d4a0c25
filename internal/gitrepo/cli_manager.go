package gitrepo

import (
	"context"
	"strings"

	"github.com/devhandbook/branchctl/internal/execshell"
)

const (
	gitBranchSubcommandConstant         = "branch"
	gitBranchListFlagConstant           = "--list"
	gitBranchFormatFlagConstant         = "--format=%(refname:short)"
	gitCheckoutSubcommandConstant       = "checkout"
	gitCheckoutCreateFlagConstant       = "-b"
	gitStatusSubcommandConstant         = "status"
	gitStatusPorcelainFlagConstant      = "--porcelain"
	gitRevParseSubcommandConstant       = "rev-parse"
	gitRevParseAbbrevRefFlagConstant    = "--abbrev-ref"
	gitHeadReferenceNameConstant        = "HEAD"
	branchListOutputSeparatorConstant   = "\n"
	terminalPromptEnvironmentConstant   = "GIT_TERMINAL_PROMPT"
	terminalPromptDisabledValueConstant = "0"
)

// GitExecutor exposes the subset of shell execution used by the CLI repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CLIRepositoryManager implements RepositoryManager by invoking the git binary.
type CLIRepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a CLIRepositoryManager from the provided executor.
func NewRepositoryManager(executor GitExecutor) (*CLIRepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &CLIRepositoryManager{executor: executor}, nil
}

// ListLocalBranches returns the short names of all local branches.
func (manager *CLIRepositoryManager) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath,
		gitBranchSubcommandConstant, gitBranchListFlagConstant, gitBranchFormatFlagConstant)
	if executionError != nil {
		return nil, executionError
	}

	branchNames := []string{}
	for _, outputLine := range strings.Split(executionResult.StandardOutput, branchListOutputSeparatorConstant) {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) == 0 {
			continue
		}
		branchNames = append(branchNames, trimmedLine)
	}

	return branchNames, nil
}

// CheckoutBranch switches the working copy to an existing branch.
func (manager *CLIRepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath,
		gitCheckoutSubcommandConstant, branchName)
	return executionError
}

// CreateAndCheckoutBranch creates a branch at the current HEAD and switches to it in one step.
func (manager *CLIRepositoryManager) CreateAndCheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executeGit(executionContext, repositoryPath,
		gitCheckoutSubcommandConstant, gitCheckoutCreateFlagConstant, branchName)
	return executionError
}

// CheckCleanWorktree reports whether the working copy has no pending changes.
func (manager *CLIRepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath,
		gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// CurrentBranchName returns the checked-out branch name or ErrNoCurrentBranch for a detached HEAD.
func (manager *CLIRepositoryManager) CurrentBranchName(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executeGit(executionContext, repositoryPath,
		gitRevParseSubcommandConstant, gitRevParseAbbrevRefFlagConstant, gitHeadReferenceNameConstant)
	if executionError != nil {
		return "", executionError
	}

	trimmedBranchName := strings.TrimSpace(executionResult.StandardOutput)
	if len(trimmedBranchName) == 0 || strings.EqualFold(trimmedBranchName, gitHeadReferenceNameConstant) {
		return "", ErrNoCurrentBranch
	}

	return trimmedBranchName, nil
}

func (manager *CLIRepositoryManager) executeGit(executionContext context.Context, repositoryPath string, arguments ...string) (execshell.ExecutionResult, error) {
	return manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{terminalPromptEnvironmentConstant: terminalPromptDisabledValueConstant},
	})
}
