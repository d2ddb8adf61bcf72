package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the remote service rejects the bearer
	// token. The engine reports it upward; obtaining fresh credentials is
	// the embedding application's job.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrRemoteConflict is returned when the server's state advanced past
	// the client's expectation during an upload. Not fatal: the next round
	// re-fetches and retries.
	ErrRemoteConflict = errors.New("remote state advanced past client expectation")
)
