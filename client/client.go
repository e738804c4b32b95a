package client

import (
	"sort"

	"github.com/zcached/go-zcached/resp"
)

// Client is the high-level façade: one method per server command. Every
// method returns a Result; expected network conditions never panic.
type Client struct {
	pool *ConnectionPool
}

// New creates a client backed by a pool of connections to the configured
// server and connects them. The pool may come up partially connected; use
// IsAlive or the pool accessors to inspect it.
func New(config Config) *Client {
	pool := NewConnectionPool(config.PoolSize, func() *Connection {
		return NewConnection(config)
	})
	pool.Setup()
	return &Client{pool: pool}
}

// FromPool creates a client using an existing, already set up pool
func FromPool(pool *ConnectionPool) *Client {
	return &Client{pool: pool}
}

// Pool returns the connection pool backing this client
func (c *Client) Pool() *ConnectionPool {
	return c.pool
}

// Close closes every pooled connection
func (c *Client) Close() {
	c.pool.Close()
}

// --------------------------------------------------------------------------
// Server Commands
// --------------------------------------------------------------------------

// Ping sends a ping command to the server
func (c *Client) Ping() Result[resp.Value] {
	return c.send(commandPing())
}

// Flush removes all records from the server
func (c *Client) Flush() Result[resp.Value] {
	return c.send(commandFlush())
}

// DBSize retrieves the number of records on the server
func (c *Client) DBSize() Result[resp.Value] {
	return c.send(commandDBSize())
}

// Save persists the server's records to disk
func (c *Client) Save() Result[resp.Value] {
	return c.send(commandSave())
}

// LastSave retrieves the timestamp of the last successful save
func (c *Client) LastSave() Result[resp.Value] {
	return c.send(commandLastSave())
}

// Keys retrieves every key stored on the server
func (c *Client) Keys() Result[resp.Value] {
	return c.send(commandKeys())
}

// Get retrieves the value stored under key
func (c *Client) Get(key string) Result[resp.Value] {
	return c.send(commandGet(key))
}

// MGet retrieves multiple values at once. For every key that does not
// exist the server returns null, so the operation itself never fails on a
// missing key.
func (c *Client) MGet(keys ...string) Result[resp.Value] {
	return c.send(commandMGet(keys...))
}

// Set stores value under key. The value may be any type FromGo accepts,
// including a prebuilt resp.Value.
func (c *Client) Set(key string, value any) Result[resp.Value] {
	converted, err := resp.FromGo(value)
	if err != nil {
		return Fail[resp.Value](err)
	}
	return c.send(commandSet(key, converted))
}

// MSet stores multiple records at once. Pairs are sent in sorted key order
// so the request encoding is deterministic.
func (c *Client) MSet(pairs map[string]any) Result[resp.Value] {
	keys := make([]string, 0, len(pairs))
	for key := range pairs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]resp.Entry, 0, len(pairs))
	for _, key := range keys {
		converted, err := resp.FromGo(pairs[key])
		if err != nil {
			return Fail[resp.Value](err)
		}
		entries = append(entries, resp.Entry{Key: resp.BulkString(key), Value: converted})
	}
	return c.send(commandMSet(entries))
}

// Delete removes the record stored under key
func (c *Client) Delete(key string) Result[resp.Value] {
	return c.send(commandDelete(key))
}

// --------------------------------------------------------------------------
// Convenience Methods
// --------------------------------------------------------------------------

// IsAlive reports whether any pooled connection can reach the server
func (c *Client) IsAlive() bool {
	return c.Ping().Success()
}

// Exists reports whether key is present on the server. A broken connection
// also yields false, so prefer Get when the distinction matters.
func (c *Client) Exists(key string) bool {
	result := c.Get(key)
	if result.Failure() {
		return false
	}
	_, isNull := result.Value().(resp.Null)
	return !isNull
}

// send encodes the command and dispatches it to the least-loaded
// connection in the pool
func (c *Client) send(cmd resp.Array) Result[resp.Value] {
	conn, err := c.pool.GetLeastLoaded()
	if err != nil {
		return Fail[resp.Value](err)
	}

	data, err := resp.Encode(cmd)
	if err != nil {
		return Fail[resp.Value](err)
	}
	return conn.Send(data)
}
