package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

// State is the lifecycle position of a connection.
type State int32

const (
	StateConnecting State = iota
	StateAuthenticated
	StateJoined
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticated:
		return "authenticated"
	case StateJoined:
		return "joined"
	case StateDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Connection implements the interfaces.Connection interface
// ARCHITECTURAL DISCOVERY: WebSocket writes must be serialized, so every
// outbound frame goes through one buffered queue drained by one writer
type Connection struct {
	ws        *websocket.Conn
	id        string
	principal interfaces.Principal
	sendCh    chan []byte   // never closed; done signals shutdown instead
	done      chan struct{} // closed exactly once by Close
	state     atomic.Int32
	closeOnce sync.Once

	writeTimeout time.Duration
	pingInterval time.Duration
	logger       zerolog.Logger
}

var _ interfaces.Connection = (*Connection)(nil)

// NewConnection wraps an upgraded socket and starts its writer.
func NewConnection(ws *websocket.Conn, principal interfaces.Principal, opts Options, logger zerolog.Logger) *Connection {
	opts = opts.withDefaults()
	id := uuid.NewString()
	c := &Connection{
		ws:           ws,
		id:           id,
		principal:    principal,
		sendCh:       make(chan []byte, opts.BufferSize),
		done:         make(chan struct{}),
		writeTimeout: opts.WriteTimeout,
		pingInterval: opts.PingInterval,
		logger:       logger.With().Str("conn_id", id).Str("admin_id", principal.AdminID).Logger(),
	}
	c.setState(StateAuthenticated)

	go c.writeLoop()

	return c
}

// ID returns the connection's UUID.
func (c *Connection) ID() string { return c.id }

// Principal returns who authenticated this connection.
func (c *Connection) Principal() interfaces.Principal { return c.principal }

// State returns the current lifecycle state.
func (c *Connection) State() State { return State(c.state.Load()) }

func (c *Connection) setState(s State) {
	// Disconnected is terminal.
	for {
		cur := c.state.Load()
		if State(cur) == StateDisconnected {
			return
		}
		if c.state.CompareAndSwap(cur, int32(s)) {
			return
		}
	}
}

// Send enqueues a frame without blocking.
// FUNCTIONAL DISCOVERY: A full buffer means the client stopped reading; the
// frame is dropped for that client rather than stalling the publisher
func (c *Connection) Send(frame *types.Frame) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	select {
	case c.sendCh <- data:
		return nil
	case <-c.done:
		return ErrConnectionClosed
	default:
		return ErrSendBufferFull
	}
}

// writeLoop is the only goroutine that writes data frames to the socket.
func (c *Connection) writeLoop() {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.sendCh:
			if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
				c.fail(err)
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.fail(err)
				return
			}

		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.writeTimeout)); err != nil {
				c.fail(err)
				return
			}

		case <-c.done:
			return
		}
	}
}

func (c *Connection) fail(err error) {
	c.logger.Debug().Err(err).Msg("write failed, closing connection")
	_ = c.Close()
}

// Close stops the writer and closes the socket. Safe to call repeatedly.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.state.Store(int32(StateDisconnected))
		close(c.done)
		if c.ws != nil {
			err = c.ws.Close()
		}
	})
	return err
}

// Done is closed once the connection has been closed.
func (c *Connection) Done() <-chan struct{} { return c.done }
