package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForCheckoutIncludesBranchAndDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"checkout", "feature-x"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Switching /workspace/repo to branch feature-x", message)
}

func TestBuildStartedMessageForCheckoutCreateDescribesCreation(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"checkout", "-b", "feature-x"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Creating branch feature-x in /workspace/repo and switching to it", message)
}

func TestBuildSuccessMessageForCurrentBranchReportsDetachedHead(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-parse", "--abbrev-ref", "HEAD"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, "/workspace/repo is in a detached HEAD state", message)
}

func TestBuildFailureMessageForStatusIncludesStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"status", "--porcelain"},
			WorkingDirectory: "/workspace/repo",
		},
	}
	result := ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "Failed to review working tree status in /workspace/repo (exit code 128: fatal: not a git repository)", message)
}

func TestBuildStartedMessageForBranchListUsesCurrentDirectoryLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"branch", "--list", "--format=%(refname:short)"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Listing local branches in current directory", message)
}
