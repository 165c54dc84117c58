package websocket

import (
	"sync"

	"complaintdesk/internal/metrics"
	"complaintdesk/pkg/interfaces"
)

// Pool owns every open connection, keyed by connection id.
// ARCHITECTURAL DISCOVERY: Pool holds sockets while the registry holds only
// ids, so group membership can never outlive the socket it points at
type Pool struct {
	mu      sync.RWMutex // TECHNICAL DISCOVERY: RWMutex optimizes for read-heavy lookup during fan-out
	conns   map[string]*Connection
	metrics *metrics.Metrics
}

// NewPool creates an empty pool. m may be nil.
func NewPool(m *metrics.Metrics) *Pool {
	return &Pool{
		conns:   make(map[string]*Connection),
		metrics: m,
	}
}

// Add registers conn under its id.
func (p *Pool) Add(conn *Connection) error {
	if conn == nil {
		return ErrNilConnection
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.conns[conn.ID()]; exists {
		return ErrDuplicateConnection
	}
	p.conns[conn.ID()] = conn
	p.metrics.ConnectionOpened()
	return nil
}

// Remove unregisters conn. Only the exact instance registered under the id is
// removed, so a stale teardown cannot evict a newer connection.
func (p *Pool) Remove(conn *Connection) {
	if conn == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	registered, exists := p.conns[conn.ID()]
	if !exists || registered != conn {
		return
	}
	delete(p.conns, conn.ID())
	p.metrics.ConnectionClosed()
}

// Lookup returns the open connection for id.
func (p *Pool) Lookup(id string) (interfaces.Connection, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	conn, ok := p.conns[id]
	if !ok {
		return nil, false
	}
	return conn, true
}

// Count returns the number of open connections.
func (p *Pool) Count() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.conns)
}

// CloseAll closes every connection. Each read pump then runs its own
// teardown, which removes the connection from the pool.
func (p *Pool) CloseAll() {
	p.mu.RLock()
	conns := make([]*Connection, 0, len(p.conns))
	for _, c := range p.conns {
		conns = append(conns, c)
	}
	p.mu.RUnlock()

	for _, c := range conns {
		_ = c.Close()
	}
}
