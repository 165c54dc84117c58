package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"complaintdesk/internal/auth"
	"complaintdesk/internal/metrics"
	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

// Options tunes connection behaviour. Zero fields take defaults.
type Options struct {
	BufferSize     int
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	AllowedOrigins []string
}

func (o Options) withDefaults() Options {
	if o.BufferSize <= 0 {
		o.BufferSize = 100
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = 5 * time.Second
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = 60 * time.Second
	}
	if o.PingInterval <= 0 {
		o.PingInterval = 30 * time.Second
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = 4096
	}
	return o
}

// Verifier checks a handshake credential.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Membership is the registry surface the transport drives.
type Membership interface {
	Join(group, connID string)
	Leave(group, connID string)
	PurgeConnection(connID string) []string
}

// groupAction maps a client event onto a registry call.
type groupAction struct {
	group string
	join  bool
}

// FUNCTIONAL DISCOVERY: Only admin-room exists today, but the table keeps the
// registry's general label shape reachable from the wire
var groupActions = map[string]groupAction{
	types.EventJoinAdmin:  {group: types.AdminRoom, join: true},
	types.EventLeaveAdmin: {group: types.AdminRoom, join: false},
}

// Handshake rejection reasons, also used as metric labels.
const (
	reasonMissingToken  = "missing_token"
	reasonInvalidToken  = "invalid_token"
	reasonForbidden     = "forbidden"
	reasonUpgradeFailed = "upgrade_failed"
)

// Handler manages WebSocket handshakes and connection lifecycles
// ARCHITECTURAL DISCOVERY: Credential checks happen before the upgrade, so a
// rejected client gets a plain HTTP status and never touches the registry
type Handler struct {
	verifier Verifier
	registry Membership
	pool     *Pool
	metrics  *metrics.Metrics
	opts     Options
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler with dependency injection.
func NewHandler(verifier Verifier, registry Membership, pool *Pool, m *metrics.Metrics, opts Options, logger zerolog.Logger) *Handler {
	opts = opts.withDefaults()
	h := &Handler{
		verifier: verifier,
		registry: registry,
		pool:     pool,
		metrics:  m,
		opts:     opts,
		logger:   logger.With().Str("component", "websocket").Logger(),
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin:      h.checkOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 || lo.Contains(h.opts.AllowedOrigins, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || lo.Contains(h.opts.AllowedOrigins, origin)
}

// HandleWebSocket authenticates and upgrades a dashboard connection.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromRequest(r)
	if token == "" {
		h.reject(w, r, http.StatusUnauthorized, reasonMissingToken, auth.ErrMissingToken)
		return
	}

	claims, err := h.verifier.Verify(token)
	if err != nil {
		h.reject(w, r, http.StatusUnauthorized, reasonInvalidToken, err)
		return
	}
	if claims.Role != types.RoleAdmin {
		h.reject(w, r, http.StatusForbidden, reasonForbidden, interfaces.ErrForbidden)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.metrics.HandshakeRejected(reasonUpgradeFailed)
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	principal := interfaces.Principal{AdminID: claims.AdminID, Email: claims.Email, Role: claims.Role}
	conn := NewConnection(ws, principal, h.opts, h.logger)
	if err := h.pool.Add(conn); err != nil {
		h.logger.Error().Err(err).Str("conn_id", conn.ID()).Msg("failed to register connection")
		_ = conn.Close()
		return
	}

	h.logger.Info().Str("conn_id", conn.ID()).Str("admin_id", principal.AdminID).Msg("connection opened")

	go h.readPump(conn)
}

func (h *Handler) reject(w http.ResponseWriter, r *http.Request, status int, reason string, err error) {
	h.metrics.HandshakeRejected(reason)
	h.logger.Info().Err(err).Str("reason", reason).Str("remote", r.RemoteAddr).Msg("handshake rejected")
	http.Error(w, http.StatusText(status), status)
}

// readPump reads client frames until the socket fails, then tears down.
func (h *Handler) readPump(conn *Connection) {
	defer func() {
		// FUNCTIONAL DISCOVERY: Purge runs before the connection leaves the pool,
		// so no publish can snapshot an id whose socket is already gone
		groups := h.registry.PurgeConnection(conn.ID())
		h.pool.Remove(conn)
		_ = conn.Close()
		h.logger.Info().Str("conn_id", conn.ID()).Strs("groups", groups).Msg("connection closed")
	}()

	ws := conn.ws
	ws.SetReadLimit(h.opts.MaxMessageSize)
	if err := ws.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout)); err != nil {
		return
	}
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(h.opts.ReadTimeout))
	})

	for {
		messageType, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug().Err(err).Str("conn_id", conn.ID()).Msg("read failed")
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		h.dispatch(conn, data)
	}
}

// dispatch applies one client frame.
func (h *Handler) dispatch(conn *Connection, data []byte) {
	var frame types.Frame
	if err := json.Unmarshal(data, &frame); err != nil {
		h.logger.Debug().Err(err).Str("conn_id", conn.ID()).Msg("ignoring malformed frame")
		return
	}

	action, ok := groupActions[frame.Event]
	if !ok {
		h.logger.Debug().Str("conn_id", conn.ID()).Str("event", frame.Event).Msg("ignoring unknown event")
		return
	}

	if action.join {
		h.registry.Join(action.group, conn.ID())
		conn.setState(StateJoined)
	} else {
		h.registry.Leave(action.group, conn.ID())
		conn.setState(StateAuthenticated)
	}
	h.logger.Debug().Str("conn_id", conn.ID()).Str("event", frame.Event).Str("group", action.group).Msg("membership changed")
}

