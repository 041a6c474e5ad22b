// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, invalid config).
	UserError = 1

	// AuthError indicates a missing or rejected API token, or unusable
	// configuration.
	AuthError = 2

	// BackendError indicates a host API or network error.
	BackendError = 3
)
