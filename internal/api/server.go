package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"complaintdesk/internal/auth"
	"complaintdesk/internal/registry"
	"complaintdesk/pkg/interfaces"
	"complaintdesk/pkg/types"
)

// Verifier checks admin credentials on protected routes.
type Verifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RegistryStats reports group membership for the health endpoint.
type RegistryStats interface {
	Stats() registry.Stats
}

// ConnectionCounter reports open transport connections.
type ConnectionCounter interface {
	Count() int
}

// Dependencies are the components the HTTP layer drives.
type Dependencies struct {
	Store       interfaces.Store
	Publisher   interfaces.Publisher
	Verifier    Verifier
	Registry    RegistryStats
	Connections ConnectionCounter
	WebSocket   http.HandlerFunc
	Gatherer    prometheus.Gatherer
}

// Config holds the HTTP-facing settings.
type Config struct {
	AllowedOrigins []string
	PublicBaseURL  string
	RateLimit      int
	RateWindow     time.Duration
}

// ARCHITECTURAL DISCOVERY: HTTP API layer serves as pure interface between external clients and internal components
// Handlers persist first and publish only after the store reports success
type Server struct {
	store       interfaces.Store
	publisher   interfaces.Publisher
	verifier    Verifier
	registry    RegistryStats
	connections ConnectionCounter
	limiter     *RateLimiter
	baseURL     string
	engine      *gin.Engine
	logger      zerolog.Logger
	now         func() time.Time
}

// NewServer builds the gin engine and registers every route.
func NewServer(deps Dependencies, cfg Config, logger zerolog.Logger) *Server {
	engine := gin.New()
	_ = engine.SetTrustedProxies(nil)

	s := &Server{
		store:       deps.Store,
		publisher:   deps.Publisher,
		verifier:    deps.Verifier,
		registry:    deps.Registry,
		connections: deps.Connections,
		limiter:     NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
		baseURL:     cfg.PublicBaseURL,
		engine:      engine,
		logger:      logger.With().Str("component", "api").Logger(),
		now:         time.Now,
	}

	engine.Use(gin.Recovery())
	engine.Use(s.requestLogger())
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s.setupRoutes(deps.WebSocket, gatherer)
	return s
}

// corsConfig mirrors the websocket origin policy: empty or "*" allows all.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || lo.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	cfg.AllowWebSockets = true
	return cfg
}

func (s *Server) setupRoutes(ws http.HandlerFunc, gatherer prometheus.Gatherer) {
	s.engine.GET("/health", s.healthCheck)
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	if ws != nil {
		s.engine.GET("/ws", gin.WrapF(ws))
	}

	api := s.engine.Group("/api")
	admin := s.requireAdmin()

	stations := api.Group("/stations")
	stations.GET("", s.listStations)
	stations.GET("/:id", s.getStation)
	stations.GET("/qr/:code", s.getStationByQRCode)
	stations.POST("", admin, s.createStation)
	stations.PUT("/:id", admin, s.updateStation)
	stations.DELETE("/:id", admin, s.deleteStation)

	complaints := api.Group("/complaints")
	complaints.GET("", admin, s.listComplaints)
	complaints.GET("/:id", s.getComplaint)
	complaints.POST("", s.rateLimit(), s.submitComplaint)
	complaints.PATCH("/:id/status", admin, s.updateComplaintStatus)
	complaints.DELETE("/:id", admin, s.deleteComplaint)

	notifications := api.Group("/notifications", admin)
	notifications.GET("", s.listNotifications)
	notifications.GET("/unread-count", s.unreadCount)
	notifications.PATCH("/:id/read", s.markNotificationRead)
	notifications.PATCH("/mark-all-read", s.markAllNotificationsRead)
}

// ServeHTTP implements http.Handler for integration with the standard HTTP server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

type HealthResponse struct {
	Status      string         `json:"status"`
	Timestamp   time.Time      `json:"timestamp"`
	Database    string         `json:"database"`
	Connections int            `json:"connections"`
	Registry    registry.Stats `json:"registry"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// FUNCTIONAL DISCOVERY: GET /health - database ping plus live transport state
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: s.now().UTC(),
		Database:  "healthy",
	}
	if err := s.store.HealthCheck(ctx); err != nil {
		resp.Status = "unhealthy"
		resp.Database = "error: " + err.Error()
	}
	if s.connections != nil {
		resp.Connections = s.connections.Count()
	}
	if s.registry != nil {
		resp.Registry = s.registry.Stats()
	}

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// FUNCTIONAL DISCOVERY: Consistent error response format
func (s *Server) sendError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   http.StatusText(code),
		Code:    code,
		Message: message,
	})
}

// fail maps store and validation sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500 without internal detail.
func (s *Server) fail(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		s.sendError(c, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, interfaces.ErrStationInactive):
		s.sendError(c, http.StatusNotFound, "Station not found or inactive")
	case errors.Is(err, types.ErrInvalidComplaint),
		errors.Is(err, types.ErrInvalidStation),
		errors.Is(err, types.ErrEmptyStatusUpdate),
		errors.Is(err, types.ErrInvalidStatusUpdate),
		errors.Is(err, ErrInvalidRequest):
		s.sendError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.sendError(c, http.StatusServiceUnavailable, "Request cancelled")
	default:
		s.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		s.sendError(c, http.StatusInternalServerError, "Internal server error")
	}
}
