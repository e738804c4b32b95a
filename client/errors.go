package client

import "errors"

// Expected failure conditions of a networked client. All of them are
// captured into Results rather than surfaced as panics.
var (
	// ErrConnectionClosed reports that the connection has been terminated
	// and could not be restored.
	ErrConnectionClosed = errors.New("the connection has been terminated")

	// ErrConnectionReestablished is informational: the connection was
	// terminated but a new one was established. The original request was
	// not resent; callers retry explicitly if needed.
	ErrConnectionReestablished = errors.New("the connection was terminated, but managed to reestablish it")

	// ErrTimeout reports that the response timeout budget was exceeded.
	ErrTimeout = errors.New("timed out waiting for a response from the server")

	// ErrEmptyPool reports that no connected connection is available.
	ErrEmptyPool = errors.New("no connected connections available in the pool")
)
