// Package client implements the connection runtime for the zcached wire
// protocol: single-socket connections with retry and reconnection, a
// least-loaded connection pool, and a high-level client exposing one method
// per server command.
//
// The package focuses on:
//   - A single connection state machine shared by every execution model,
//     parameterized over a small capability set (a Dialer for opening
//     sockets and an injectable sleep for awaiting delays)
//   - Grammar-driven response framing: the receive loop appends received
//     bytes and retries the decode until the codec stops reporting
//     resp.ErrIncomplete; no idle-timeout heuristic is involved
//   - Transparent reconnection that never implies automatic retry of the
//     request that triggered it
//   - A connection pool with least-loaded selection, dynamic resize and
//     broken-member cleanup
//
// Key Components:
//
//   - Connection: owns one socket. Send serializes overlapping logical
//     requests through a per-connection mutex: one full write-then-read
//     round trip completes before the next write begins.
//
//   - ConnectionPool: owns a set of Connections and is the sole owner
//     responsible for closing every member it removes. Structural mutation
//     (Setup/Extend/Reduce/Cleanup) is not reentrant; concurrent use of a
//     single member is serialized only by that member's own lock.
//
//   - Client: the façade with one method per server verb (PING, GET, MGET,
//     SET, MSET, DELETE, KEYS, DBSIZE, SAVE, LASTSAVE, FLUSH).
//
//   - Result: the success/failure envelope returned by every operation.
//     Expected network conditions (closed connections, timeouts, server
//     errors) are captured in Results, never raised as panics.
//
//   - ExponentialBackoff: a pure, restartable delay sequence shared by the
//     connect retry loop and the receive poll loop.
//
// Error Semantics:
//
//	ErrConnectionReestablished is informational and non-terminal: the
//	connection is usable again, but the request that was in flight when the
//	connection broke is lost and must be retried explicitly by the caller.
package client
