// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including a task id that matched nothing.
	Success = 0

	// UserError indicates a user error (bad args, unknown command or flag).
	UserError = 1

	// StorageError indicates the tasks file could not be read, parsed or written.
	StorageError = 2
)
