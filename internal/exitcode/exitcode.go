// Package exitcode defines the process exit codes of the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments, a missing note or list, or a local file error.
	UserError = 1

	// AuthError indicates a missing, rejected or unexchangeable credential.
	AuthError = 2

	// BackendError indicates a network failure or an error reported by ClickUp.
	BackendError = 3
)
