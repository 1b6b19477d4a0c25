// Package branches implements the branch management operations at the core of
// branchctl.
//
// It offers Service for creating-or-checking-out branches, querying worktree
// cleanliness, and reading the current branch name, plus Cobra command
// builders and configuration types that expose those operations on the CLI.
package branches
