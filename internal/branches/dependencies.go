package branches

import (
	"errors"

	"go.uber.org/zap"

	"github.com/devhandbook/branchctl/internal/execshell"
	"github.com/devhandbook/branchctl/internal/gitrepo"
	"github.com/devhandbook/branchctl/internal/ui"
)

const unsupportedBackendMessageConstant = "unsupported repository backend"

// ErrUnsupportedBackend indicates the configured backend identifier is not recognized.
var ErrUnsupportedBackend = errors.New(unsupportedBackendMessageConstant)

// ResolveRepositoryManager returns the provided manager or constructs one for the configured backend.
func ResolveRepositoryManager(existing gitrepo.RepositoryManager, backend string, logger *zap.Logger, humanReadableLogging bool) (gitrepo.RepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}

	switch backend {
	case BackendNative:
		return gitrepo.NewNativeRepositoryManager(), nil
	case BackendCLI, "":
		executor, executorError := resolveShellExecutor(logger, humanReadableLogging)
		if executorError != nil {
			return nil, executorError
		}
		return gitrepo.NewRepositoryManager(executor)
	default:
		return nil, ErrUnsupportedBackend
	}
}

func resolveShellExecutor(logger *zap.Logger, humanReadableLogging bool) (*execshell.ShellExecutor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	commandRunner := execshell.NewOSCommandRunner()
	if humanReadableLogging {
		return execshell.NewShellExecutorWithObserver(logger, commandRunner, ui.NewConsoleCommandEventLogger(logger))
	}
	return execshell.NewShellExecutor(logger, commandRunner)
}
