package port

import "errors"

// Sentinel errors used across ports. Per-item failures (a repo, a file, a
// chunk, a category) are absorbed by callers as skip-and-continue; only
// ErrNoUsableInput is terminal for a run.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrRateLimited       = errors.New("rate limited by upstream")
	ErrMissingCredential = errors.New("missing credential")
	ErrNoUsableInput     = errors.New("no code could be harvested")
)
