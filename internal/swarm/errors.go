package swarm

import "errors"

// Sentinel errors returned by pool construction and the learning API.
// Callers match with errors.Is.
var (
	// ErrConfiguration indicates invalid pool construction parameters.
	// Fatal — the caller must fix its configuration before retrying.
	ErrConfiguration = errors.New("invalid swarm configuration")

	// ErrNotFound indicates an unknown agent id. Recoverable — the caller
	// should re-check the id.
	ErrNotFound = errors.New("agent not found")

	// ErrValidation indicates a malformed knowledge unit. Recoverable —
	// the caller fixes the input and retries. No mutation has occurred.
	ErrValidation = errors.New("invalid knowledge unit")
)
