package gitrepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/devhandbook/branchctl/internal/gitrepo"
)

const (
	testInitialBranchNameConstant = "master"
	testFeatureBranchNameConstant = "feature-x"
	testTrackedFileNameConstant   = "README.md"
	testUntrackedFileNameConstant = "notes.txt"
	testCommitMessageConstant     = "initial commit"
	testAuthorNameConstant        = "branchctl test"
	testAuthorEmailConstant       = "test@example.com"
)

func initializeRepository(t *testing.T) (string, *gogit.Repository, plumbing.Hash) {
	t.Helper()

	repositoryPath := t.TempDir()
	repository, initializationError := gogit.PlainInit(repositoryPath, false)
	require.NoError(t, initializationError)

	worktree, worktreeError := repository.Worktree()
	require.NoError(t, worktreeError)

	trackedFilePath := filepath.Join(repositoryPath, testTrackedFileNameConstant)
	require.NoError(t, os.WriteFile(trackedFilePath, []byte("content\n"), 0o644))

	_, addError := worktree.Add(testTrackedFileNameConstant)
	require.NoError(t, addError)

	commitHash, commitError := worktree.Commit(testCommitMessageConstant, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  testAuthorNameConstant,
			Email: testAuthorEmailConstant,
			When:  time.Now(),
		},
	})
	require.NoError(t, commitError)

	return repositoryPath, repository, commitHash
}

func TestNativeManagerCurrentBranchNameAfterInitialCommit(t *testing.T) {
	repositoryPath, _, _ := initializeRepository(t)
	manager := gitrepo.NewNativeRepositoryManager()

	branchName, branchError := manager.CurrentBranchName(context.Background(), repositoryPath)
	require.NoError(t, branchError)
	require.Equal(t, testInitialBranchNameConstant, branchName)
}

func TestNativeManagerCreateAndCheckoutBranch(t *testing.T) {
	repositoryPath, _, _ := initializeRepository(t)
	manager := gitrepo.NewNativeRepositoryManager()

	creationError := manager.CreateAndCheckoutBranch(context.Background(), repositoryPath, testFeatureBranchNameConstant)
	require.NoError(t, creationError)

	branchName, branchError := manager.CurrentBranchName(context.Background(), repositoryPath)
	require.NoError(t, branchError)
	require.Equal(t, testFeatureBranchNameConstant, branchName)

	branchNames, listError := manager.ListLocalBranches(context.Background(), repositoryPath)
	require.NoError(t, listError)
	require.ElementsMatch(t, []string{testInitialBranchNameConstant, testFeatureBranchNameConstant}, branchNames)
}

func TestNativeManagerCheckoutExistingBranch(t *testing.T) {
	repositoryPath, _, _ := initializeRepository(t)
	manager := gitrepo.NewNativeRepositoryManager()

	require.NoError(t, manager.CreateAndCheckoutBranch(context.Background(), repositoryPath, testFeatureBranchNameConstant))
	require.NoError(t, manager.CheckoutBranch(context.Background(), repositoryPath, testInitialBranchNameConstant))

	branchName, branchError := manager.CurrentBranchName(context.Background(), repositoryPath)
	require.NoError(t, branchError)
	require.Equal(t, testInitialBranchNameConstant, branchName)
}

func TestNativeManagerCheckCleanWorktree(t *testing.T) {
	repositoryPath, _, _ := initializeRepository(t)
	manager := gitrepo.NewNativeRepositoryManager()

	clean, statusError := manager.CheckCleanWorktree(context.Background(), repositoryPath)
	require.NoError(t, statusError)
	require.True(t, clean)

	untrackedFilePath := filepath.Join(repositoryPath, testUntrackedFileNameConstant)
	require.NoError(t, os.WriteFile(untrackedFilePath, []byte("draft\n"), 0o644))

	clean, statusError = manager.CheckCleanWorktree(context.Background(), repositoryPath)
	require.NoError(t, statusError)
	require.False(t, clean)
}

func TestNativeManagerReportsDetachedHead(t *testing.T) {
	repositoryPath, repository, commitHash := initializeRepository(t)
	manager := gitrepo.NewNativeRepositoryManager()

	worktree, worktreeError := repository.Worktree()
	require.NoError(t, worktreeError)
	require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{Hash: commitHash}))

	_, branchError := manager.CurrentBranchName(context.Background(), repositoryPath)
	require.ErrorIs(t, branchError, gitrepo.ErrNoCurrentBranch)
}

func TestNativeManagerFailsForMissingRepository(t *testing.T) {
	manager := gitrepo.NewNativeRepositoryManager()

	_, listError := manager.ListLocalBranches(context.Background(), t.TempDir())
	require.Error(t, listError)
}
