package client

import (
	"bytes"
	"errors"
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zcached/go-zcached/resp"
)

// --------------------------------------------------------------------------
// Test Doubles
// --------------------------------------------------------------------------

// timeoutError mimics the deadline error a real socket read returns when no
// data arrived before the read deadline
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

type fakeAddr string

func (a fakeAddr) Network() string { return "tcp" }
func (a fakeAddr) String() string  { return string(a) }

// fakeConn is a scripted net.Conn. Each Read delivers the next chunk of the
// script; a nil chunk simulates the peer closing the connection and an
// exhausted script simulates a silent socket (deadline timeout). Everything
// written is recorded.
type fakeConn struct {
	mu      sync.Mutex
	reads   [][]byte
	written bytes.Buffer

	failWrites bool
	closed     bool
}

func (c *fakeConn) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, io.ErrClosedPipe
	}
	if len(c.reads) == 0 {
		return 0, timeoutError{}
	}

	chunk := c.reads[0]
	if chunk == nil {
		return 0, io.EOF
	}

	n := copy(p, chunk)
	if n < len(chunk) {
		c.reads[0] = chunk[n:]
	} else {
		c.reads = c.reads[1:]
	}
	return n, nil
}

func (c *fakeConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failWrites {
		return 0, errors.New("broken pipe")
	}
	return c.written.Write(p)
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.written.String()
}

func (c *fakeConn) LocalAddr() net.Addr  { return fakeAddr("local") }
func (c *fakeConn) RemoteAddr() net.Addr { return fakeAddr("remote") }
func (c *fakeConn) SetDeadline(time.Time) error      { return nil }
func (c *fakeConn) SetReadDeadline(time.Time) error  { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error { return nil }

// fakeDialer hands out the scripted sockets in order. The first failures
// calls fail, and so does every call after the script runs out.
type fakeDialer struct {
	mu       sync.Mutex
	conns    []net.Conn
	failures int
	calls    int
}

func (d *fakeDialer) Dial(endpoint string) (net.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls++
	if d.failures > 0 {
		d.failures--
		return nil, errors.New("connection refused")
	}
	if len(d.conns) == 0 {
		return nil, errors.New("connection refused")
	}

	conn := d.conns[0]
	d.conns = d.conns[1:]
	return conn, nil
}

func (d *fakeDialer) Name() string { return "fake" }

func (d *fakeDialer) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

// testConfig returns a config with a short timeout budget so the receive
// loop terminates quickly under a stubbed sleep
func testConfig() Config {
	config := DefaultConfig("localhost", 5555)
	config.RetryBackoffInit = 100 * time.Millisecond
	config.RetryBackoffFactor = 2
	config.RetryBackoffMax = time.Second
	config.TimeoutLimit = 50 * time.Millisecond
	config.BufferSize = 8 // small on purpose, forces chunked reads
	return config
}

// testConnection builds a connection on the given dialer with sleeping
// stubbed out entirely
func testConnection(config Config, dialer Dialer) *Connection {
	conn := NewConnectionWith(config, dialer)
	conn.sleep = func(time.Duration) {}
	return conn
}

// --------------------------------------------------------------------------
// Connect
// --------------------------------------------------------------------------

func TestConnectSuccess(t *testing.T) {
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{&fakeConn{}}})

	require.True(t, conn.Connect())
	assert.Equal(t, StateConnected, conn.State())
	assert.True(t, conn.IsConnected())
}

// TestConnectExhaustsAttempts tests that a refusing endpoint is dialed
// exactly ConnectionAttempts times with one backoff delay between attempts,
// and that the connection ends up disconnected rather than failing hard
func TestConnectExhaustsAttempts(t *testing.T) {
	config := testConfig()
	config.ConnectionAttempts = 2

	dialer := &fakeDialer{}
	conn := NewConnectionWith(config, dialer)

	var slept []time.Duration
	conn.sleep = func(d time.Duration) { slept = append(slept, d) }

	require.False(t, conn.Connect())
	assert.Equal(t, StateDisconnected, conn.State())
	assert.Equal(t, 2, dialer.Calls())
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, slept)
}

func TestConnectNoRetryWhenReconnectDisabled(t *testing.T) {
	config := testConfig()
	config.Reconnect = false
	config.ConnectionAttempts = 5

	dialer := &fakeDialer{}
	conn := testConnection(config, dialer)

	require.False(t, conn.Connect())
	assert.Equal(t, 1, dialer.Calls())
}

func TestConnectAfterCloseRefused(t *testing.T) {
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{&fakeConn{}}})
	conn.Close()

	assert.False(t, conn.Connect())
	assert.Equal(t, StateClosed, conn.State())
}

// --------------------------------------------------------------------------
// Send / Receive
// --------------------------------------------------------------------------

// TestSendReceivesChunkedResponse tests a full request/response exchange
// where the response arrives in arbitrarily small pieces. The framing must
// come purely from the grammar: keep reading while the buffer is a valid
// prefix, stop exactly when it decodes.
func TestSendReceivesChunkedResponse(t *testing.T) {
	request, err := resp.Encode(resp.Array{
		resp.BulkString("SET"), resp.BulkString("x"), resp.Integer(5),
	})
	require.NoError(t, err)

	socket := &fakeConn{reads: [][]byte{
		[]byte(":"), []byte("5"), []byte("\r\n"),
	}}
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{socket}})
	require.True(t, conn.Connect())

	result := conn.Send(request)

	require.True(t, result.Success())
	assert.Equal(t, resp.Integer(5), result.Value())
	assert.Equal(t, string(request), socket.Written())
	assert.Equal(t, int64(0), conn.Pending())
}

func TestSendLargeResponseAcrossBufferBoundary(t *testing.T) {
	payload := resp.BulkString("a response well past the tiny receive buffer")
	encoded, err := resp.Encode(payload)
	require.NoError(t, err)

	// one oversized chunk, the 8 byte receive buffer splits it internally
	socket := &fakeConn{reads: [][]byte{encoded}}
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{socket}})
	require.True(t, conn.Connect())

	result := conn.Send([]byte("*1\r\n$4\r\nPING\r\n"))

	require.True(t, result.Success())
	assert.Equal(t, payload, result.Value())
}

func TestSendServerError(t *testing.T) {
	socket := &fakeConn{reads: [][]byte{[]byte("-ERR 'x' not found\r\n")}}
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{socket}})
	require.True(t, conn.Connect())

	result := conn.Send([]byte("*2\r\n$3\r\nGET\r\n$1\r\nx\r\n"))

	require.True(t, result.Failure())
	var serverErr *resp.ServerError
	require.ErrorAs(t, result.Err(), &serverErr)
	assert.Equal(t, "ERR 'x' not found", serverErr.Message)

	// a server-level error leaves the connection usable
	assert.True(t, conn.IsConnected())
}

// TestSendTimeout tests the timeout budget: a silent socket is polled with a
// growing backoff until the accumulated wait exceeds the limit, then the
// socket is torn down so a late partial frame can never be resumed
func TestSendTimeout(t *testing.T) {
	socket := &fakeConn{} // empty script, every read times out
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{socket}})
	require.True(t, conn.Connect())

	var slept []time.Duration
	conn.sleep = func(d time.Duration) { slept = append(slept, d) }

	result := conn.Send([]byte("*1\r\n$4\r\nPING\r\n"))

	require.True(t, result.Failure())
	assert.ErrorIs(t, result.Err(), ErrTimeout)
	assert.Equal(t, StateDisconnected, conn.State())
	assert.True(t, socket.closed)

	// 10ms, then 30ms (total 30ms), then 90ms (total 120ms > 50ms budget)
	assert.Equal(t, []time.Duration{
		10 * time.Millisecond, 30 * time.Millisecond, 90 * time.Millisecond,
	}, slept)
}

// TestSendPeerClosedReconnects tests the reestablishment sub-protocol: a
// zero-length read marks the connection broken, the dialer is asked for a
// fresh socket and the caller is told the request itself was lost
func TestSendPeerClosedReconnects(t *testing.T) {
	first := &fakeConn{reads: [][]byte{nil}} // immediate EOF
	second := &fakeConn{}
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{first, second}})
	require.True(t, conn.Connect())

	result := conn.Send([]byte("*1\r\n$4\r\nPING\r\n"))

	require.True(t, result.Failure())
	assert.ErrorIs(t, result.Err(), ErrConnectionReestablished)
	assert.True(t, conn.IsConnected())
	assert.True(t, first.closed)
}

func TestSendPeerClosedWithoutReconnect(t *testing.T) {
	config := testConfig()
	config.Reconnect = false

	socket := &fakeConn{reads: [][]byte{nil}}
	conn := testConnection(config, &fakeDialer{conns: []net.Conn{socket}})
	require.True(t, conn.Connect())

	result := conn.Send([]byte("*1\r\n$4\r\nPING\r\n"))

	require.True(t, result.Failure())
	assert.ErrorIs(t, result.Err(), ErrConnectionClosed)
	assert.False(t, conn.IsConnected())
}

func TestSendWriteFailureReconnects(t *testing.T) {
	first := &fakeConn{failWrites: true}
	second := &fakeConn{}
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{first, second}})
	require.True(t, conn.Connect())

	result := conn.Send([]byte("*1\r\n$4\r\nPING\r\n"))

	require.True(t, result.Failure())
	assert.ErrorIs(t, result.Err(), ErrConnectionReestablished)
	assert.True(t, conn.IsConnected())
}

func TestSendOnClosedConnection(t *testing.T) {
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{&fakeConn{}}})
	require.True(t, conn.Connect())
	conn.Close()

	result := conn.Send([]byte("*1\r\n$4\r\nPING\r\n"))

	require.True(t, result.Failure())
	assert.ErrorIs(t, result.Err(), ErrConnectionClosed)
}

// TestSendSerializesConcurrentRequests tests that overlapping callers are
// queued on the connection lock, one request/response exchange at a time
func TestSendSerializesConcurrentRequests(t *testing.T) {
	socket := &fakeConn{reads: [][]byte{
		[]byte("+PONG\r\n"), []byte("+PONG\r\n"), []byte("+PONG\r\n"),
	}}
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{socket}})
	require.True(t, conn.Connect())

	request := []byte("*1\r\n$4\r\nPING\r\n")

	var wg sync.WaitGroup
	results := make([]Result[resp.Value], 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = conn.Send(request)
		}(i)
	}
	wg.Wait()

	for i, result := range results {
		require.True(t, result.Success(), "request %d failed: %v", i, result.Err())
		assert.Equal(t, resp.SimpleString("PONG"), result.Value())
	}
	assert.Equal(t, string(request)+string(request)+string(request), socket.Written())
	assert.Equal(t, int64(0), conn.Pending())
}

// --------------------------------------------------------------------------
// Close
// --------------------------------------------------------------------------

// TestCloseDuringSend tests closing a connection while a request is waiting
// on a silent socket: Close must queue behind the in-flight exchange, the
// Send must fail cleanly and the connection must end up closed
func TestCloseDuringSend(t *testing.T) {
	socket := &fakeConn{} // silent, every read times out
	conn := testConnection(testConfig(), &fakeDialer{conns: []net.Conn{socket}})
	require.True(t, conn.Connect())

	inReceiveLoop := make(chan struct{})
	var once sync.Once
	conn.sleep = func(time.Duration) {
		once.Do(func() { close(inReceiveLoop) })
	}

	done := make(chan Result[resp.Value], 1)
	go func() {
		done <- conn.Send([]byte("*1\r\n$4\r\nPING\r\n"))
	}()

	<-inReceiveLoop
	conn.Close()

	result := <-done
	require.True(t, result.Failure())
	assert.Equal(t, StateClosed, conn.State())
	assert.True(t, socket.closed)
}

func TestCloseIsIdempotentAndTerminal(t *testing.T) {
	socket := &fakeConn{}
	dialer := &fakeDialer{conns: []net.Conn{socket}}
	conn := testConnection(testConfig(), dialer)
	require.True(t, conn.Connect())

	conn.Close()
	conn.Close()

	assert.Equal(t, StateClosed, conn.State())
	assert.True(t, socket.closed)

	// neither a reconnect nor a fresh connect may revive it
	assert.ErrorIs(t, conn.TryReconnect().Err(), ErrConnectionClosed)
	assert.False(t, conn.Connect())
	assert.Equal(t, 1, dialer.Calls())
}
