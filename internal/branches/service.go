package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/devhandbook/branchctl/internal/gitrepo"
)

const (
	branchNameRequiredMessageConstant       = "branch name must be provided"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	worktreeNotCleanMessageConstant         = "repository worktree is not clean"
	branchListFailureTemplateConstant       = "failed to list local branches: %w"
	branchCheckoutFailureTemplateConstant   = "failed to checkout branch %q: %w"
	branchCreationFailureTemplateConstant   = "failed to create branch %q: %w"
	cleanVerificationErrorTemplateConstant  = "failed to verify clean worktree: %w"
	currentBranchFailureTemplateConstant    = "failed to determine current branch: %w"

	ensureFailedLogMessageConstant = "branch ensure failed"
	detachedHeadLogMessageConstant = "repository HEAD is detached, reporting fallback branch name"
	logFieldBranchNameConstant     = "branch_name"
	logFieldRepositoryPathConstant = "repository_path"
	unknownBranchFallbackConstant  = "unknown"
)

// ErrBranchNameRequired indicates the branch name option was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the repository manager dependency was missing.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// ErrWorktreeNotClean indicates the repository contains uncommitted changes.
var ErrWorktreeNotClean = errors.New(worktreeNotCleanMessageConstant)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	RepositoryManager gitrepo.RepositoryManager
	Logger            *zap.Logger
}

// EnsureOptions configure a create-or-checkout operation.
type EnsureOptions struct {
	RepositoryPath string
	BranchName     string
	RequireClean   bool
}

// EnsureResult captures the observable outcome of a create-or-checkout operation.
type EnsureResult struct {
	RepositoryPath string
	BranchName     string
	BranchCreated  bool
}

// Service coordinates branch operations through a repository manager.
type Service struct {
	repositoryManager gitrepo.RepositoryManager
	logger            *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.RepositoryManager == nil {
		return nil, ErrRepositoryManagerNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{repositoryManager: dependencies.RepositoryManager, logger: logger}, nil
}

// EnsureBranch checks out the named branch, creating it at the current HEAD when absent.
//
// Failures are logged before being returned to the caller; no recovery or
// retry is attempted.
func (service *Service) EnsureBranch(executionContext context.Context, options EnsureOptions) (EnsureResult, error) {
	trimmedBranchName := strings.TrimSpace(options.BranchName)
	if len(trimmedBranchName) == 0 {
		return EnsureResult{}, ErrBranchNameRequired
	}

	repositoryPath := strings.TrimSpace(options.RepositoryPath)

	if options.RequireClean {
		clean, cleanError := service.repositoryManager.CheckCleanWorktree(executionContext, repositoryPath)
		if cleanError != nil {
			return EnsureResult{}, service.logAndWrapEnsureFailure(repositoryPath, trimmedBranchName, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError))
		}
		if !clean {
			return EnsureResult{}, service.logAndWrapEnsureFailure(repositoryPath, trimmedBranchName, ErrWorktreeNotClean)
		}
	}

	branchNames, listError := service.repositoryManager.ListLocalBranches(executionContext, repositoryPath)
	if listError != nil {
		return EnsureResult{}, service.logAndWrapEnsureFailure(repositoryPath, trimmedBranchName, fmt.Errorf(branchListFailureTemplateConstant, listError))
	}

	if branchListContains(branchNames, trimmedBranchName) {
		if checkoutError := service.repositoryManager.CheckoutBranch(executionContext, repositoryPath, trimmedBranchName); checkoutError != nil {
			return EnsureResult{}, service.logAndWrapEnsureFailure(repositoryPath, trimmedBranchName, fmt.Errorf(branchCheckoutFailureTemplateConstant, trimmedBranchName, checkoutError))
		}
		return EnsureResult{RepositoryPath: repositoryPath, BranchName: trimmedBranchName, BranchCreated: false}, nil
	}

	if creationError := service.repositoryManager.CreateAndCheckoutBranch(executionContext, repositoryPath, trimmedBranchName); creationError != nil {
		return EnsureResult{}, service.logAndWrapEnsureFailure(repositoryPath, trimmedBranchName, fmt.Errorf(branchCreationFailureTemplateConstant, trimmedBranchName, creationError))
	}

	return EnsureResult{RepositoryPath: repositoryPath, BranchName: trimmedBranchName, BranchCreated: true}, nil
}

// IsWorkingDirectoryClean reports whether the repository has no pending changes.
func (service *Service) IsWorkingDirectoryClean(executionContext context.Context, repositoryPath string) (bool, error) {
	clean, cleanError := service.repositoryManager.CheckCleanWorktree(executionContext, strings.TrimSpace(repositoryPath))
	if cleanError != nil {
		return false, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError)
	}
	return clean, nil
}

// CurrentBranchName returns the checked-out branch name, falling back to
// "unknown" when the repository HEAD does not resolve to a branch.
func (service *Service) CurrentBranchName(executionContext context.Context, repositoryPath string) (string, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)

	branchName, branchError := service.repositoryManager.CurrentBranchName(executionContext, trimmedRepositoryPath)
	if branchError != nil {
		if errors.Is(branchError, gitrepo.ErrNoCurrentBranch) {
			service.logger.Debug(detachedHeadLogMessageConstant, zap.String(logFieldRepositoryPathConstant, trimmedRepositoryPath))
			return unknownBranchFallbackConstant, nil
		}
		return "", fmt.Errorf(currentBranchFailureTemplateConstant, branchError)
	}

	return branchName, nil
}

func (service *Service) logAndWrapEnsureFailure(repositoryPath string, branchName string, failure error) error {
	service.logger.Error(
		ensureFailedLogMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldBranchNameConstant, branchName),
		zap.Error(failure),
	)
	return failure
}

func branchListContains(branchNames []string, candidate string) bool {
	for _, branchName := range branchNames {
		if branchName == candidate {
			return true
		}
	}
	return false
}
