package client

import (
	"net"
	"time"
)

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// Dialer defines the interface for transport-specific socket operations.
// It is the "open" capability of the connection state machine; reading and
// writing go through the returned net.Conn, and delays are awaited through
// the connection's sleep function. Supplying a different Dialer (or sleep)
// yields a different execution model without touching the state machine.
type Dialer interface {
	// Dial establishes a single connection to the endpoint
	Dial(endpoint string) (net.Conn, error)

	// Name returns the name of the transport type (e.g. "tcp")
	Name() string
}

// -----------------------------------------------------------
// TCP Dialer
// -----------------------------------------------------------

// tcpDialer implements the Dialer interface for TCP sockets
type tcpDialer struct {
	config Config
}

// NewTCPDialer creates the default TCP dialer, applying the socket
// settings from the configuration to every established connection
func NewTCPDialer(config Config) Dialer {
	return &tcpDialer{config: config}
}

func (d *tcpDialer) Name() string {
	return "tcp"
}

func (d *tcpDialer) Dial(endpoint string) (net.Conn, error) {
	conn, err := net.Dial("tcp", endpoint)
	if err != nil {
		return nil, err
	}

	if err := d.upgradeConnection(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// upgradeConnection applies performance settings to a TCP connection
// using the configured socket values
func (d *tcpDialer) upgradeConnection(conn net.Conn) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return nil // Not a TCP connection, nothing to upgrade
	}

	// Disable Nagle's algorithm if configured
	if err := tcpConn.SetNoDelay(d.config.TCPNoDelay); err != nil {
		return err
	}

	// Set keepalive interval if configured
	if d.config.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return err
		}
		if err := tcpConn.SetKeepAlivePeriod(time.Duration(d.config.TCPKeepAliveSec) * time.Second); err != nil {
			return err
		}
	}

	// Set socket buffer sizes if configured
	if d.config.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(d.config.ReadBufferSize); err != nil {
			return err
		}
	}
	if d.config.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(d.config.WriteBufferSize); err != nil {
			return err
		}
	}

	return nil
}
