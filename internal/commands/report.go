package commands

import (
	"errors"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

// reportFailure prints the outcome of a failed task operation.
// A missing task is a normal outcome; anything else means the store failed.
func reportFailure(out, errOut io.Writer, id string, err error) int {
	if errors.Is(err, service.ErrNotFound) {
		fmt.Fprintf(out, "Task with ID %s not found.\n", id)
		return exitcode.Success
	}
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}

// reportSuccess prints msg unless quiet output was requested.
func reportSuccess(cfg *config.Config, out io.Writer, format string, a ...any) int {
	if !cfg.Quiet {
		fmt.Fprintf(out, format+"\n", a...)
	}
	return exitcode.Success
}

// requireID returns the first positional argument as task id text.
func requireID(args []string, errOut io.Writer) (string, bool) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return "", false
	}
	return args[0], true
}
