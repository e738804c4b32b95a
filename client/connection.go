package client

import (
	"errors"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/zcached/go-zcached/resp"
)

var plog = logger.GetLogger("client")

// Receive loop tuning. The poll backoff grows while the socket stays
// silent and restarts whenever bytes arrive; its running total is the
// elapsed wait measured against the timeout budget.
const (
	receivePollTimeout  = 5 * time.Millisecond
	receiveBackoffInit  = 10 * time.Millisecond
	receiveBackoffGrow  = 3
	receiveBackoffLimit = 500 * time.Millisecond
)

// --------------------------------------------------------------------------
// Connection State
// --------------------------------------------------------------------------

// State describes the lifecycle position of a connection
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateClosed // terminal
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Connection
// --------------------------------------------------------------------------

// Connection owns one socket to the server. It implements connect with
// retry and backoff, send/receive framing via the resp codec, and
// transparent reconnection. A per-connection mutex serializes overlapping
// logical requests: concurrent callers queue and are served in arrival
// order relative to the lock.
type Connection struct {
	dialer Dialer
	sleep  func(time.Duration) // delay capability, stubbed in tests

	endpoint string
	config   Config

	conn    net.Conn
	state   atomic.Int32
	pending *xsync.Counter // load signal consumed by the pool
	mu      sync.Mutex     // serializes the send path
	id      string
}

// NewConnection creates a connection to the configured endpoint using the
// default TCP dialer. The connection starts disconnected; call Connect.
func NewConnection(config Config) *Connection {
	return NewConnectionWith(config, NewTCPDialer(config))
}

// NewConnectionWith creates a connection that opens sockets through the
// provided dialer
func NewConnectionWith(config Config, dialer Dialer) *Connection {
	return &Connection{
		dialer:   dialer,
		sleep:    time.Sleep,
		endpoint: config.Addr(),
		config:   config,
		pending:  xsync.NewCounter(),
		id:       newConnectionID(),
	}
}

// newConnectionID generates a short identifier used in log lines
func newConnectionID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	b := make([]byte, 6)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return "#" + string(b)
}

// ID returns the connection's log identifier
func (c *Connection) ID() string {
	return c.id
}

// Endpoint returns the host:port the connection targets
func (c *Connection) Endpoint() string {
	return c.endpoint
}

// State returns the current lifecycle state
func (c *Connection) State() State {
	return State(c.state.Load())
}

func (c *Connection) setState(s State) {
	c.state.Store(int32(s))
}

// IsConnected reports whether the last connect attempt succeeded. The
// socket may still be broken underneath; the flag is updated lazily when a
// send or receive fails.
func (c *Connection) IsConnected() bool {
	return c.State() == StateConnected
}

// Pending returns the number of outstanding requests, the load signal
// consumed by the pool's least-loaded selection
func (c *Connection) Pending() int64 {
	return c.pending.Value()
}

// Connect attempts to establish the socket, retrying up to the configured
// number of attempts with the configured backoff curve between them.
// Exhausting all attempts (or Reconnect=false) leaves the connection
// disconnected; this is reported through the return value, not an error.
func (c *Connection) Connect() bool {
	if c.State() == StateClosed {
		return false
	}

	plog.Debugf("%s -> connecting to %s...", c.id, c.endpoint)
	c.setState(StateConnecting)

	backoff := NewExponentialBackoff(c.config.RetryBackoffInit, c.config.RetryBackoffFactor, c.config.RetryBackoffMax)

	for attempt := 1; ; attempt++ {
		conn, err := c.dialer.Dial(c.endpoint)
		if err == nil {
			c.conn = conn
			c.setState(StateConnected)
			plog.Infof("%s -> connected to %s via %s", c.id, c.endpoint, c.dialer.Name())
			return true
		}

		metricConnectFails.Inc()
		plog.Warningf("%s -> connecting to %s failed (attempt %d/%d): %v",
			c.id, c.endpoint, attempt, c.config.ConnectionAttempts, err)

		if attempt >= c.config.ConnectionAttempts || !c.config.Reconnect {
			break
		}
		c.sleep(backoff.Next())
	}

	c.setState(StateDisconnected)
	return false
}

// Send writes the encoded request and waits for one complete response
// value. At most one logical request is in flight per connection; the
// original bytes are never resent automatically after a reconnect.
func (c *Connection) Send(data []byte) Result[resp.Value] {
	c.pending.Inc()
	defer c.pending.Dec()

	c.mu.Lock()
	defer c.mu.Unlock()

	metricRequests.Inc()

	if c.State() == StateClosed || c.conn == nil {
		metricRequestErrors.Inc()
		return Fail[resp.Value](ErrConnectionClosed)
	}

	plog.Debugf("%s -> sending %d bytes", c.id, len(data))
	if _, err := c.conn.Write(data); err != nil {
		plog.Debugf("%s -> write failed: %v", c.id, err)
		metricRequestErrors.Inc()
		if !c.config.Reconnect {
			return Fail[resp.Value](ErrConnectionClosed)
		}
		return c.tryReconnect()
	}

	result := c.waitForResponse()
	if result.Failure() {
		metricRequestErrors.Inc()
		if c.config.Reconnect && errors.Is(result.Err(), ErrConnectionClosed) {
			return c.tryReconnect()
		}
	}
	return result
}

// waitForResponse reads from the socket until the buffered bytes decode to
// one complete top-level value. Framing is grammar-driven: on
// resp.ErrIncomplete the loop keeps the buffer and waits for more bytes;
// there is no idle heuristic. The wait between silent reads follows a
// short-interval backoff whose total is measured against the timeout
// budget. Not safe for concurrent use; callers hold the send lock.
func (c *Connection) waitForResponse() Result[resp.Value] {
	backoff := NewExponentialBackoff(receiveBackoffInit, receiveBackoffGrow, receiveBackoffLimit)
	var buf []byte
	chunk := make([]byte, c.config.BufferSize)

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(receivePollTimeout))
		n, err := c.conn.Read(chunk)

		if n == 0 {
			if err != nil {
				var netErr net.Error
				if errors.As(err, &netErr) && netErr.Timeout() {
					// No data in the socket yet
					if backoff.Total() >= c.config.TimeoutLimit {
						return c.failTimeout()
					}
					c.sleep(backoff.Next())
					continue
				}
			}
			// A zero-length read means the peer closed the connection
			plog.Debugf("%s -> peer closed the connection", c.id)
			c.setState(StateDisconnected)
			return Fail[resp.Value](ErrConnectionClosed)
		}

		buf = append(buf, chunk[:n]...)
		backoff.Reset()

		value, _, decodeErr := resp.Decode(buf)
		if decodeErr == nil {
			return Ok(value)
		}
		if errors.Is(decodeErr, resp.ErrIncomplete) {
			continue // a valid prefix, wait for the rest
		}

		var serverErr *resp.ServerError
		if errors.As(decodeErr, &serverErr) {
			plog.Debugf("%s -> server reported: %s", c.id, serverErr.Message)
			return Fail[resp.Value](serverErr)
		}

		plog.Errorf("%s -> undecodable response: %v", c.id, decodeErr)
		return Fail[resp.Value](decodeErr)
	}
}

// failTimeout reports an exceeded timeout budget. The socket may still
// deliver a late, partial frame, so it cannot be reused mid-stream: the
// connection is closed and flagged for reconnection instead.
func (c *Connection) failTimeout() Result[resp.Value] {
	plog.Warningf("%s -> response timeout budget of %s exceeded", c.id, c.config.TimeoutLimit)
	metricTimeouts.Inc()

	if c.conn != nil {
		c.conn.Close()
	}
	c.setState(StateDisconnected)
	return Fail[resp.Value](ErrTimeout)
}

// TryReconnect discards the current socket, rebuilds it and re-runs
// Connect. A successful attempt is reported as the informational failure
// ErrConnectionReestablished: connected again, but the original request is
// lost and must be retried explicitly.
func (c *Connection) TryReconnect() Result[resp.Value] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tryReconnect()
}

// tryReconnect is the reconnect sub-protocol; callers hold the send lock
func (c *Connection) tryReconnect() Result[resp.Value] {
	if c.State() == StateClosed {
		return Fail[resp.Value](ErrConnectionClosed)
	}

	plog.Debugf("%s -> attempting to reconnect...", c.id)

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.setState(StateDisconnected)

	if c.Connect() {
		metricReconnects.Inc()
		return Fail[resp.Value](ErrConnectionReestablished)
	}
	return Fail[resp.Value](ErrConnectionClosed)
}

// Close releases the socket and resets the pending-request counter.
// It is idempotent and terminal: a closed connection never reconnects.
// Close takes the send lock, so it waits for an in-flight request to finish
// rather than pulling the socket out from under the receive loop.
func (c *Connection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() == StateClosed {
		return
	}
	c.setState(StateClosed)

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.pending.Reset()
	plog.Debugf("%s -> closed", c.id)
}
