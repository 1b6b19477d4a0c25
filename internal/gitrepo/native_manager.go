package gitrepo

import (
	"context"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	repositoryOpenErrorTemplateConstant = "unable to open repository at %s: %w"
	branchEnumerationErrorTemplate      = "unable to enumerate local branches: %w"
	worktreeAccessErrorTemplateConstant = "unable to access worktree: %w"
	worktreeStatusErrorTemplateConstant = "unable to read worktree status: %w"
	branchCheckoutErrorTemplateConstant = "unable to checkout branch %s: %w"
	branchCreationErrorTemplateConstant = "unable to create branch %s: %w"
	headResolutionErrorTemplateConstant = "unable to resolve HEAD: %w"
)

// NativeRepositoryManager implements RepositoryManager using the go-git library.
//
// It performs the same operations as CLIRepositoryManager without requiring a
// git binary on the host.
type NativeRepositoryManager struct{}

// NewNativeRepositoryManager constructs a go-git backed repository manager.
func NewNativeRepositoryManager() *NativeRepositoryManager {
	return &NativeRepositoryManager{}
}

// ListLocalBranches returns the short names of all local branches.
func (manager *NativeRepositoryManager) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}

	repository, openError := gogit.PlainOpen(repositoryPath)
	if openError != nil {
		return nil, fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, openError)
	}

	branchIterator, iterationError := repository.Branches()
	if iterationError != nil {
		return nil, fmt.Errorf(branchEnumerationErrorTemplate, iterationError)
	}
	defer branchIterator.Close()

	branchNames := []string{}
	collectError := branchIterator.ForEach(func(branchReference *plumbing.Reference) error {
		branchNames = append(branchNames, branchReference.Name().Short())
		return nil
	})
	if collectError != nil {
		return nil, fmt.Errorf(branchEnumerationErrorTemplate, collectError)
	}

	return branchNames, nil
}

// CheckoutBranch switches the working copy to an existing branch.
func (manager *NativeRepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	worktree, worktreeError := manager.openWorktree(repositoryPath)
	if worktreeError != nil {
		return worktreeError
	}

	checkoutError := worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branchName),
	})
	if checkoutError != nil {
		return fmt.Errorf(branchCheckoutErrorTemplateConstant, branchName, checkoutError)
	}

	return nil
}

// CreateAndCheckoutBranch creates a branch at the current HEAD and switches to it in one step.
func (manager *NativeRepositoryManager) CreateAndCheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	worktree, worktreeError := manager.openWorktree(repositoryPath)
	if worktreeError != nil {
		return worktreeError
	}

	checkoutError := worktree.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branchName),
		Create: true,
	})
	if checkoutError != nil {
		return fmt.Errorf(branchCreationErrorTemplateConstant, branchName, checkoutError)
	}

	return nil
}

// CheckCleanWorktree reports whether the working copy has no pending changes.
func (manager *NativeRepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return false, contextError
	}

	worktree, worktreeError := manager.openWorktree(repositoryPath)
	if worktreeError != nil {
		return false, worktreeError
	}

	worktreeStatus, statusError := worktree.Status()
	if statusError != nil {
		return false, fmt.Errorf(worktreeStatusErrorTemplateConstant, statusError)
	}

	return worktreeStatus.IsClean(), nil
}

// CurrentBranchName returns the checked-out branch name or ErrNoCurrentBranch for a detached HEAD.
func (manager *NativeRepositoryManager) CurrentBranchName(executionContext context.Context, repositoryPath string) (string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", contextError
	}

	repository, openError := gogit.PlainOpen(repositoryPath)
	if openError != nil {
		return "", fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, openError)
	}

	headReference, headError := repository.Head()
	if headError != nil {
		return "", fmt.Errorf(headResolutionErrorTemplateConstant, headError)
	}

	if !headReference.Name().IsBranch() {
		return "", ErrNoCurrentBranch
	}

	return headReference.Name().Short(), nil
}

func (manager *NativeRepositoryManager) openWorktree(repositoryPath string) (*gogit.Worktree, error) {
	repository, openError := gogit.PlainOpen(repositoryPath)
	if openError != nil {
		return nil, fmt.Errorf(repositoryOpenErrorTemplateConstant, repositoryPath, openError)
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return nil, fmt.Errorf(worktreeAccessErrorTemplateConstant, worktreeError)
	}

	return worktree, nil
}
