// Package utils exposes reusable helpers consumed across the branchctl CLI.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging, plus the
// CommandContextAccessor used to thread configuration metadata through
// command execution contexts.
package utils
