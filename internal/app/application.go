package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"complaintdesk/internal/api"
	"complaintdesk/internal/auth"
	"complaintdesk/internal/config"
	"complaintdesk/internal/database"
	"complaintdesk/internal/metrics"
	"complaintdesk/internal/publisher"
	"complaintdesk/internal/registry"
	"complaintdesk/internal/websocket"
	pkgdatabase "complaintdesk/pkg/database"
)

// Application coordinates all system components
// Clean dependency injection pattern with proper initialization order
type Application struct {
	config     *config.Config
	logger     zerolog.Logger
	store      *database.Manager
	registry   *registry.Registry
	pool       *websocket.Pool
	apiServer  *api.Server
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
	serveErr chan error
}

// NewApplication creates a new application instance with all components initialized
// Component initialization follows strict dependency order:
// Database → Metrics → Registry/Pool → Publisher → Auth → Transport → API → HTTP
func NewApplication(cfg *config.Config, logger zerolog.Logger) (*Application, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	// Validate configuration before component initialization
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// STEP 1: Credentials first, so a missing secret fails before any file is opened
	issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	// STEP 2: Initialize database manager (foundation layer)
	store, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	// STEP 2.5: Apply database migrations to ensure schema is up to date
	if _, err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}

	// STEP 3: Metrics registry shared by every component and /metrics
	gatherer := prometheus.NewRegistry()
	gatherer.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.MustNewMetrics(gatherer)

	// STEP 4: Group registry and connection pool. Neither is global; both are
	// handed to the components that need them.
	groups := registry.New(m, logger)
	pool := websocket.NewPool(m)

	// STEP 5: Publisher reads membership from the registry and sockets from the pool
	pub := publisher.New(groups, pool, m, logger)

	// STEP 6: Initialize WebSocket handler
	wsHandler := websocket.NewHandler(issuer, groups, pool, m, websocket.Options{
		BufferSize:     cfg.WebSocket.BufferSize,
		WriteTimeout:   cfg.WebSocket.WriteTimeout,
		ReadTimeout:    cfg.WebSocket.ReadTimeout,
		PingInterval:   cfg.WebSocket.PingInterval,
		MaxMessageSize: cfg.WebSocket.MaxMessageSize,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	}, logger)

	// STEP 7: API server with every write-path dependency
	apiServer := api.NewServer(api.Dependencies{
		Store:       store,
		Publisher:   pub,
		Verifier:    issuer,
		Registry:    groups,
		Connections: pool,
		WebSocket:   wsHandler.HandleWebSocket,
		Gatherer:    gatherer,
	}, api.Config{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		PublicBaseURL:  cfg.Public.BaseURL,
		RateLimit:      cfg.RateLimit.MaxRequests,
		RateWindow:     cfg.RateLimit.Window,
	}, logger)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      apiServer,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	return &Application{
		config:     cfg,
		logger:     logger.With().Str("component", "app").Logger(),
		store:      store,
		registry:   groups,
		pool:       pool,
		apiServer:  apiServer,
		httpServer: httpServer,
	}, nil
}

// OpenStore opens the SQLite store described by cfg without migrating it.
func OpenStore(cfg *config.Config, logger zerolog.Logger) (*database.Manager, error) {
	dbConfig := pkgdatabase.DefaultConfig()
	dbConfig.DatabasePath = cfg.Database.Path
	dbConfig.WriteTimeout = cfg.Database.Timeout

	store, err := database.NewManager(dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database manager: %w", err)
	}
	return store, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.apiServer
}

// Start begins application execution
// The listener is bound before Start returns, so a port conflict is reported
// to the caller rather than from a background goroutine
func (app *Application) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", app.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.httpServer.Addr, err)
	}

	app.mu.Lock()
	app.listener = ln
	app.serveErr = make(chan error, 1)
	app.mu.Unlock()

	go func() {
		if err := app.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.serveErr <- fmt.Errorf("HTTP server error: %w", err)
		}
		close(app.serveErr)
	}()

	app.logger.Info().Str("addr", ln.Addr().String()).Msg("complaintdesk started")
	return nil
}

// Run starts the application and blocks until ctx ends or the server
// fails, then shuts down within the configured timeout.
func (app *Application) Run(ctx context.Context) error {
	if err := app.Start(ctx); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-app.serveErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.HTTP.ShutdownTimeout)
	defer cancel()
	return errors.Join(serveErr, app.Stop(shutdownCtx))
}

// Stop gracefully shuts down the application
// Reverse dependency order: HTTP → WebSocket connections → Database
func (app *Application) Stop(ctx context.Context) error {
	app.logger.Info().Msg("shutting down")

	// STEP 1: Stop accepting new requests. Hijacked websockets are not
	// tracked by the HTTP server.
	var errs []error
	if err := app.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP server shutdown: %w", err))
	}

	// STEP 2: Close dashboard connections; each read pump purges its own membership
	app.pool.CloseAll()

	// STEP 3: Close database connections
	if err := app.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("database shutdown: %w", err))
	}

	app.logger.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

// GetAddr returns the bound listener address once started, otherwise the
// configured address.
func (app *Application) GetAddr() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.listener != nil {
		return app.listener.Addr().String()
	}
	return app.httpServer.Addr
}
