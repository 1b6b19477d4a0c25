package gitrepo

import (
	"context"
	"errors"
)

const (
	executorNotConfiguredMessageConstant = "git executor not configured"
	noCurrentBranchMessageConstant       = "no current branch"
)

// ErrExecutorNotConfigured indicates a repository manager was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrNoCurrentBranch indicates the repository HEAD does not point at a branch.
var ErrNoCurrentBranch = errors.New(noCurrentBranchMessageConstant)

// RepositoryManager exposes the narrow set of repository operations branchctl requires.
//
// The abstraction keeps branch services unit-testable without a repository on
// disk and allows the git binary and go-git library backends to be swapped.
type RepositoryManager interface {
	// ListLocalBranches returns the short names of all local branches.
	ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error)
	// CheckoutBranch switches the working copy to an existing branch.
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	// CreateAndCheckoutBranch creates a branch at the current HEAD and switches to it in one step.
	CreateAndCheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	// CheckCleanWorktree reports whether the working copy has no staged, unstaged, or untracked changes.
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	// CurrentBranchName returns the checked-out branch name or ErrNoCurrentBranch for a detached HEAD.
	CurrentBranchName(executionContext context.Context, repositoryPath string) (string, error)
}
