package interfaces

import "complaintdesk/pkg/types"

// Principal identifies who opened a connection, as proven by the handshake
// credential.
type Principal struct {
	AdminID string
	Email   string
	Role    string
}

// Connection is one open dashboard session as the fan-out sees it.
// ARCHITECTURAL DISCOVERY: The publisher only ever needs to hand a frame
// over, so the socket itself stays hidden behind Send
type Connection interface {
	// ID returns the connection's opaque identifier
	ID() string

	// Principal returns the authenticated identity behind the connection
	Principal() Principal

	// Send enqueues a frame for delivery without blocking. Frames sent from
	// one goroutine are written in call order.
	Send(frame *types.Frame) error

	// Close closes the connection and releases its writer
	Close() error
}
