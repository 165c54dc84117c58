// Package client is a Go dashboard client for the admin event stream. It
// joins the admin group, dispatches server events by name and reconnects
// with exponential backoff, redoing the full handshake and join each time.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"complaintdesk/pkg/types"
)

// Resources a dashboard re-fetches when an event arrives.
const (
	ResourceComplaints    = "complaints"
	ResourceStations      = "stations"
	ResourceNotifications = "notifications"
)

const (
	writeWait  = 5 * time.Second
	closeGrace = time.Second
)

// HandlerFunc receives one server event. The payload is a hint; treat it
// as a reason to reload, not as the authoritative record.
type HandlerFunc func(ctx context.Context, frame *types.Frame)

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDialer replaces the default websocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithBackOff sets the reconnect policy. The factory is called once per Run.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(c *Client) { c.newBackOff = factory }
}

// WithOnJoin registers a callback run after every successful join,
// including rejoins. Events sent while disconnected are never replayed,
// so this is where a dashboard reloads everything.
func WithOnJoin(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onJoin = fn }
}

// Client maintains one admin session against the server.
type Client struct {
	url        string
	token      string
	dialer     *websocket.Dialer
	newBackOff func() backoff.BackOff
	onJoin     func(ctx context.Context)
	logger     zerolog.Logger

	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

// New creates a client for serverURL. http and https URLs are mapped to
// ws and wss.
func New(serverURL, token string, opts ...Option) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	switch u.Scheme {
	case "ws", "wss":
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}

	c := &Client{
		url:      u.String(),
		token:    token,
		dialer:   websocket.DefaultDialer,
		logger:   zerolog.Nop(),
		handlers: make(map[string][]HandlerFunc),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0 // retry until the context ends
			return b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// On registers fn for a server event. Several handlers may share an event;
// they run in registration order on the read goroutine.
func (c *Client) On(event string, fn HandlerFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = append(c.handlers[event], fn)
}

// Run connects, joins and dispatches until ctx ends, reconnecting after
// any disconnect. It returns nil on cancellation, ErrHandshakeRejected if
// the server refuses the credential, or ErrGaveUp if the backoff policy
// stops.
func (c *Client) Run(ctx context.Context) error {
	b := backoff.WithContext(c.newBackOff(), ctx)

	for attempt := 1; ; attempt++ {
		joined, err := c.session(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, ErrHandshakeRejected) {
			return err
		}
		if joined {
			b.Reset()
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %v", ErrGaveUp, err)
		}
		c.logger.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("disconnected, reconnecting")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// session runs one connection from dial to disconnect. joined reports
// whether the join frame was sent.
func (c *Client) session(ctx context.Context) (joined bool, err error) {
	header := http.Header{"Authorization": {"Bearer " + c.token}}
	conn, resp, err := c.dialer.DialContext(ctx, c.url, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return false, fmt.Errorf("%w: %s", ErrHandshakeRejected, resp.Status)
		}
		return false, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	if err := c.send(conn, types.EventJoinAdmin); err != nil {
		return false, fmt.Errorf("join: %w", err)
	}
	c.logger.Info().Str("url", c.url).Msg("joined admin stream")
	if c.onJoin != nil {
		c.onJoin(ctx)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			c.leave(conn)
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return true, nil
			}
			return true, fmt.Errorf("read: %w", err)
		}

		var frame types.Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			c.logger.Debug().Err(err).Msg("ignoring malformed frame")
			continue
		}
		c.dispatch(ctx, &frame)
	}
}

// leave announces departure and starts the close handshake. The read
// deadline bounds how long we wait for the server to finish it.
func (c *Client) leave(conn *websocket.Conn) {
	if err := c.send(conn, types.EventLeaveAdmin); err != nil {
		c.logger.Debug().Err(err).Msg("leave frame not sent")
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	_ = conn.SetReadDeadline(time.Now().Add(closeGrace))
}

func (c *Client) send(conn *websocket.Conn, event string) error {
	frame, err := types.NewFrame(event, nil)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}

func (c *Client) dispatch(ctx context.Context, frame *types.Frame) {
	c.mu.RLock()
	handlers := c.handlers[frame.Event]
	c.mu.RUnlock()

	if len(handlers) == 0 {
		c.logger.Debug().Str("event", frame.Event).Msg("no handler for event")
		return
	}
	for _, fn := range handlers {
		c.invoke(ctx, fn, frame)
	}
}

func (c *Client) invoke(ctx context.Context, fn HandlerFunc, frame *types.Frame) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Str("event", frame.Event).Msg("event handler panicked")
		}
	}()
	fn(ctx, frame)
}

// ResourceFor names the resource a dashboard should re-fetch for event,
// or "" for events that carry no reload hint.
func ResourceFor(event string) string {
	switch event {
	case types.EventNewComplaint, types.EventComplaintUpdate:
		return ResourceComplaints
	case types.EventStationUpdate:
		return ResourceStations
	case types.EventNotification:
		return ResourceNotifications
	default:
		return ""
	}
}
