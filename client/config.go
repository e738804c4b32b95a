package client

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Client configuration struct
// --------------------------------------------------------------------------

// Config holds all parameters for connections and the connection pool.
type Config struct {
	// Server address
	Host string
	Port int

	// Number of connections the pool maintains
	PoolSize int

	// Retry policy for establishing a connection
	ConnectionAttempts int
	Reconnect          bool
	RetryBackoffInit   time.Duration
	RetryBackoffFactor float64
	RetryBackoffMax    time.Duration

	// Receive settings
	TimeoutLimit time.Duration // response timeout budget per request
	BufferSize   int           // receive buffer size in bytes

	// TCP socket settings
	TCPNoDelay      bool
	TCPKeepAliveSec int
	ReadBufferSize  int
	WriteBufferSize int
}

// DefaultConfig returns a Config with the default retry, timeout and
// buffer settings for the given server address.
func DefaultConfig(host string, port int) Config {
	return Config{
		Host:               host,
		Port:               port,
		PoolSize:           1,
		ConnectionAttempts: 3,
		Reconnect:          true,
		RetryBackoffInit:   500 * time.Millisecond,
		RetryBackoffFactor: 2,
		RetryBackoffMax:    3 * time.Second,
		TimeoutLimit:       15 * time.Second,
		BufferSize:         2048,
		TCPNoDelay:         true,
	}
}

// Addr returns the host:port endpoint string
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// String returns a formatted string representation of the configuration
func (c *Config) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Server")
	addField("Endpoint", c.Addr())

	addSection("Pool")
	addField("Pool Size", strconv.Itoa(c.PoolSize))

	addSection("Retry Policy")
	addField("Connection Attempts", strconv.Itoa(c.ConnectionAttempts))
	addField("Reconnect", strconv.FormatBool(c.Reconnect))
	addField("Backoff Initial", c.RetryBackoffInit.String())
	addField("Backoff Multiplier", fmt.Sprintf("%g", c.RetryBackoffFactor))
	addField("Backoff Max", c.RetryBackoffMax.String())

	addSection("Receive")
	addField("Timeout Limit", c.TimeoutLimit.String())
	addField("Buffer Size", fmt.Sprintf("%d bytes", c.BufferSize))

	addSection("Socket")
	addField("TCP NoDelay", strconv.FormatBool(c.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.TCPKeepAliveSec))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.ReadBufferSize))
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.WriteBufferSize))

	return sb.String()
}
