package client

import (
	"sync"

	"github.com/lni/dragonboat/v4/logger"
)

var poolLog = logger.GetLogger("pool")

// ConnectionFactory builds a new, not yet connected member for the pool
type ConnectionFactory func() *Connection

// ConnectionPool owns a set of connections and schedules callers onto the
// least-loaded connected member. The pool is the sole owner of its members
// and closes every connection it removes.
//
// The target size and the actual membership may transiently diverge during
// a resize; they converge at the end of each resize operation. Structural
// mutation (Setup, Extend, Reduce, CleanupBroken) is not protected against
// concurrent structural mutation; concurrent use of any single member is
// serialized only through that member's own lock.
type ConnectionPool struct {
	size        int // target size, lazily reconciled with membership
	factory     ConnectionFactory
	connections []*Connection
}

// NewConnectionPool creates a pool that maintains up to size connections
// built by the factory. Call Setup to populate and connect them.
func NewConnectionPool(size int, factory ConnectionFactory) *ConnectionPool {
	poolLog.Infof("initiated a new connection pool, target size: %d", size)
	return &ConnectionPool{
		size:    size,
		factory: factory,
	}
}

// Size returns the target size of the pool
func (p *ConnectionPool) Size() int {
	return p.size
}

// Connections returns all members of the pool
func (p *ConnectionPool) Connections() []*Connection {
	return p.connections
}

// ConnectedConnections returns the members whose last connect succeeded
func (p *ConnectionPool) ConnectedConnections() []*Connection {
	connected := make([]*Connection, 0, len(p.connections))
	for _, conn := range p.connections {
		if conn.IsConnected() {
			connected = append(connected, conn)
		}
	}
	return connected
}

// BrokenConnections returns the members that are not connected
func (p *ConnectionPool) BrokenConnections() []*Connection {
	broken := make([]*Connection, 0)
	for _, conn := range p.connections {
		if !conn.IsConnected() {
			broken = append(broken, conn)
		}
	}
	return broken
}

// IsWorking reports whether any member is connected
func (p *ConnectionPool) IsWorking() bool {
	return len(p.ConnectedConnections()) > 0
}

// IsEmpty reports whether the pool has no members
func (p *ConnectionPool) IsEmpty() bool {
	return len(p.connections) == 0
}

// IsFull reports whether the membership has reached the target size
func (p *ConnectionPool) IsFull() bool {
	return len(p.connections) == p.size
}

// Setup builds exactly the target number of connections and connects them
// all concurrently. It returns once every attempt has finished, succeeded
// or not; members that failed to connect stay in the pool as broken until
// Reconnect or CleanupBroken deals with them.
func (p *ConnectionPool) Setup() {
	poolLog.Infof("filling the connection pool with %d connections", p.size)
	p.connections = p.connections[:0]

	var wg sync.WaitGroup
	for i := 0; i < p.size; i++ {
		conn := p.factory()
		p.connections = append(p.connections, conn)

		wg.Add(1)
		go func() {
			defer wg.Done()
			conn.Connect()
		}()
	}
	wg.Wait()

	poolLog.Infof("pool ready: %d/%d connections established",
		len(p.ConnectedConnections()), p.size)
}

// GetLeastLoaded returns the connected member with the fewest pending
// requests; ties are broken by iteration order. It fails with ErrEmptyPool
// when no member is connected.
func (p *ConnectionPool) GetLeastLoaded() (*Connection, error) {
	var best *Connection
	for _, conn := range p.connections {
		if !conn.IsConnected() {
			continue
		}
		if best == nil || conn.Pending() < best.Pending() {
			best = conn
		}
	}
	if best == nil {
		return nil, ErrEmptyPool
	}
	return best, nil
}

// Extend creates amount new members via the factory, connects them and
// raises the target size to the new membership count
func (p *ConnectionPool) Extend(amount int) {
	conns := make([]*Connection, 0, amount)
	for i := 0; i < amount; i++ {
		conns = append(conns, p.factory())
	}
	p.ExtendWith(conns...)
}

// ExtendWith adds existing connections to the pool, connects them and
// raises the target size to the new membership count
func (p *ConnectionPool) ExtendWith(conns ...*Connection) {
	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func(c *Connection) {
			defer wg.Done()
			c.Connect()
		}(conn)
	}

	p.connections = append(p.connections, conns...)
	p.size = len(p.connections)
	wg.Wait()

	poolLog.Debugf("extended connection pool, new size: %d", p.size)
}

// Reduce decreases the target size by amount (floored at zero) and frees
// members to match: broken members first, then connected members with zero
// pending requests. Members with pending work are left alone unless force
// is set. Removed members are closed in the background; the call never
// removes more than amount members even if more are eligible.
func (p *ConnectionPool) Reduce(amount int, force bool) {
	poolLog.Debugf("reducing the pool by %d connections (force=%t)", amount, force)
	if amount <= 0 {
		return
	}

	p.size -= amount
	if p.size < 0 {
		p.size = 0
	}
	if p.size >= len(p.connections) {
		return
	}

	// Broken members go first
	for _, broken := range p.BrokenConnections() {
		p.remove(broken)
		if p.size >= len(p.connections) {
			return
		}
	}

	// Then idle connected members, least loaded first
	for range p.ConnectedConnections() {
		conn, err := p.GetLeastLoaded()
		if err != nil {
			break // no connected members left
		}
		if conn.Pending() != 0 && !force {
			break
		}
		p.remove(conn)
		if p.size >= len(p.connections) {
			return
		}
	}

	// Not enough members were eligible; converge the target to what is left
	p.size = len(p.connections)
}

// Reconnect concurrently re-attempts the connection of the selected subset
// of members (broken members only, or every member) and returns the number
// of connected members afterwards
func (p *ConnectionPool) Reconnect(onlyBroken bool) int {
	conns := p.connections
	if onlyBroken {
		conns = p.BrokenConnections()
	}
	poolLog.Debugf("reconnecting %d pool connections (onlyBroken=%t)", len(conns), onlyBroken)

	var wg sync.WaitGroup
	for _, conn := range conns {
		wg.Add(1)
		go func(c *Connection) {
			defer wg.Done()
			c.TryReconnect()
		}(conn)
	}
	wg.Wait()

	return len(p.ConnectedConnections())
}

// CleanupBroken removes every disconnected member from the pool and closes
// it in the background. The target size is left unchanged.
func (p *ConnectionPool) CleanupBroken() {
	broken := p.BrokenConnections()
	if len(broken) == 0 {
		return
	}
	poolLog.Infof("clearing %d non-working connections", len(broken))
	for _, conn := range broken {
		p.remove(conn)
	}
}

// Close closes every member in the background and empties the pool
func (p *ConnectionPool) Close() {
	poolLog.Infof("closing %d connections in the pool", len(p.connections))
	for _, conn := range p.connections {
		go conn.Close()
	}
	p.connections = nil
}

// remove drops a member from the list and closes it as a best-effort
// background operation the caller does not wait on
func (p *ConnectionPool) remove(target *Connection) {
	for i, conn := range p.connections {
		if conn == target {
			p.connections = append(p.connections[:i], p.connections[i+1:]...)
			metricPoolRemovals.Inc()
			go target.Close()
			return
		}
	}
}
