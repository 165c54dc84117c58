package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	// ARCHITECTURAL DISCOVERY: Import SQLite driver but only reference in connection string
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	dbconfig "complaintdesk/pkg/database"
	"complaintdesk/pkg/interfaces"
)

// Manager implements the interfaces.Store interface
type Manager struct {
	db           *sql.DB
	config       *dbconfig.Config
	writeChannel chan writeOperation // TECHNICAL: Single-writer pattern for SQLite
	shutdown     chan struct{}
	stopped      chan struct{} // closed once writeLoop has returned
	wg           sync.WaitGroup
	closed       bool
	mu           sync.RWMutex // TECHNICAL: Protect closed status
	logger       zerolog.Logger
	now          func() time.Time
}

var _ interfaces.Store = (*Manager)(nil)

// writeOperation represents a database write operation
type writeOperation struct {
	ctx       context.Context
	operation func(*sql.DB) error
	result    chan error
}

// NewManager opens the database and starts the writer goroutine.
func NewManager(config *dbconfig.Config, logger zerolog.Logger) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	db, err := sql.Open("sqlite3", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// FUNCTIONAL DISCOVERY: Connection pool configuration critical for concurrent reads
	db.SetMaxOpenConns(config.MaxConnections)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	if err := applySQLiteOptimizations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply SQLite optimizations: %w", err)
	}

	manager := &Manager{
		db:           db,
		config:       config,
		writeChannel: make(chan writeOperation, 100),
		shutdown:     make(chan struct{}),
		stopped:      make(chan struct{}),
		logger:       logger.With().Str("component", "database").Logger(),
		now:          func() time.Time { return time.Now().UTC() },
	}

	// ARCHITECTURAL DISCOVERY: Single-writer goroutine prevents SQLite write contention
	manager.wg.Add(1)
	go manager.writeLoop()

	return manager, nil
}

// writeLoop processes all write operations in a single goroutine
func (m *Manager) writeLoop() {
	defer m.wg.Done()
	defer close(m.stopped)

	for {
		// Shutdown wins over queued work once Close has been called.
		select {
		case <-m.shutdown:
			m.drainQueued()
			return
		default:
		}

		select {
		case op := <-m.writeChannel:
			op.result <- m.run(op)

		case <-m.shutdown:
			m.drainQueued()
			return
		}
	}
}

// run executes one operation, retrying once after RetryDelay for transient
// failures. The wait gives up when the caller's context ends or the manager
// shuts down.
// TECHNICAL DISCOVERY: The retry wait holds the writer, so later writes queue
// behind it for at most RetryDelay
func (m *Manager) run(op writeOperation) error {
	if err := op.ctx.Err(); err != nil {
		return err
	}

	err := op.operation(m.db)
	if err == nil || !retryable(err) {
		return err
	}

	m.logger.Warn().Err(err).Dur("retry_in", m.config.RetryDelay).Msg("database write failed, retrying once")
	timer := time.NewTimer(m.config.RetryDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-op.ctx.Done():
		m.logger.Debug().Err(err).Msg("write retry abandoned, caller canceled")
		return op.ctx.Err()
	case <-m.shutdown:
		return ErrManagerClosed
	}

	if err = op.operation(m.db); err != nil {
		m.logger.Error().Err(err).Msg("database write failed after retry")
	}
	return err
}

// drainQueued answers every operation still buffered at shutdown.
func (m *Manager) drainQueued() {
	drained := 0
	for {
		select {
		case op := <-m.writeChannel:
			op.result <- ErrManagerClosed
			drained++
		default:
			m.logger.Debug().Int("drained", drained).Msg("database write loop shutting down")
			return
		}
	}
}

// retryable excludes outcomes a second attempt cannot change.
func retryable(err error) bool {
	return !errors.Is(err, interfaces.ErrNotFound) &&
		!errors.Is(err, interfaces.ErrStationInactive) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

// executeWrite queues a write operation and waits for completion
func (m *Manager) executeWrite(ctx context.Context, operation func(*sql.DB) error) error {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		return ErrManagerClosed
	}
	m.mu.RUnlock()

	result := make(chan error, 1)
	timeout := time.NewTimer(m.config.WriteTimeout)
	defer timeout.Stop()

	select {
	case m.writeChannel <- writeOperation{ctx: ctx, operation: operation, result: result}:
	case <-timeout.C:
		return ErrWriteTimeout
	case <-m.shutdown:
		return ErrManagerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once queued the operation's outcome is what the caller must see. An
	// operation enqueued after the final drain never runs.
	select {
	case err := <-result:
		return err
	case <-m.stopped:
		select {
		case err := <-result:
			return err
		default:
			return ErrManagerClosed
		}
	}
}

// withTx runs fn in a transaction on the writer goroutine.
func (m *Manager) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return m.executeWrite(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }() // TECHNICAL: Always rollback unless commit succeeds

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}
		return nil
	})
}

func newID() string { return uuid.NewString() }

// Migrate applies pending embedded migrations and returns the versions it ran.
func (m *Manager) Migrate(ctx context.Context) ([]string, error) {
	applied, err := dbconfig.NewMigrationManager(m.db, dbconfig.Migrations()).ApplyMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	if len(applied) > 0 {
		m.logger.Info().Strs("versions", applied).Msg("applied database migrations")
	}
	return applied, nil
}

// HealthCheck validates database connectivity
func (m *Manager) HealthCheck(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	var n int
	if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stations").Scan(&n); err != nil {
		return fmt.Errorf("database read test failed: %w", err)
	}
	return nil
}

// GetDB returns the underlying database connection for migrations
func (m *Manager) GetDB() *sql.DB {
	return m.db
}

// Close shuts down the database manager
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	// ARCHITECTURAL DISCOVERY: Graceful shutdown requires careful goroutine coordination
	close(m.shutdown)
	m.wg.Wait()

	if err := m.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// applySQLiteOptimizations applies performance optimizations
func applySQLiteOptimizations(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}
	return nil
}

// nullTime converts an optional timestamp for scanning results.
func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
