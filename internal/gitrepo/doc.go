// Package gitrepo provides repository-level git operations behind a narrow,
// mockable RepositoryManager seam.
//
// Two interchangeable backends are available: CLIRepositoryManager drives the
// git binary through execshell, and NativeRepositoryManager wraps the go-git
// library for environments without a git installation.
package gitrepo
