package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment key, e.g. COMPLAINTDESK_HTTP_PORT.
const EnvPrefix = "COMPLAINTDESK"

// ARCHITECTURAL DISCOVERY: Configuration layer serves as system-wide settings coordinator
// Clean separation between configuration management and business logic
type Config struct {
	Database  DatabaseConfig  `yaml:"database" envconfig:"DATABASE"`
	HTTP      HTTPConfig      `yaml:"http" envconfig:"HTTP"`
	WebSocket WebSocketConfig `yaml:"websocket" envconfig:"WEBSOCKET"`
	Auth      AuthConfig      `yaml:"auth" envconfig:"AUTH"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Public    PublicConfig    `yaml:"public" envconfig:"PUBLIC"`
}

// FUNCTIONAL DISCOVERY: Database configuration supports SQLite optimizations
type DatabaseConfig struct {
	Path    string        `yaml:"path" split_words:"true"`
	Timeout time.Duration `yaml:"timeout" split_words:"true"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host" split_words:"true"`
	Port            int           `yaml:"port" split_words:"true"`
	ReadTimeout     time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `yaml:"write_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true"`
	AllowedOrigins  []string      `yaml:"allowed_origins" split_words:"true"`
}

// FUNCTIONAL DISCOVERY: Heartbeat and buffer sizes bound how long a dead
// dashboard can hold server resources
type WebSocketConfig struct {
	PingInterval   time.Duration `yaml:"ping_interval" split_words:"true"`
	ReadTimeout    time.Duration `yaml:"read_timeout" split_words:"true"`
	WriteTimeout   time.Duration `yaml:"write_timeout" split_words:"true"`
	BufferSize     int           `yaml:"buffer_size" split_words:"true"`
	MaxMessageSize int64         `yaml:"max_message_size" split_words:"true"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret" split_words:"true"`
	Issuer   string        `yaml:"issuer" split_words:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" split_words:"true"`
}

type RateLimitConfig struct {
	MaxRequests int           `yaml:"max_requests" split_words:"true"`
	Window      time.Duration `yaml:"window" split_words:"true"`
}

type LogConfig struct {
	Level  string `yaml:"level" split_words:"true"`
	Format string `yaml:"format" split_words:"true"`
	File   string `yaml:"file" split_words:"true"`
}

// PublicConfig describes how customers reach the service.
type PublicConfig struct {
	BaseURL string `yaml:"base_url" split_words:"true"`
}

// DefaultConfig returns settings suitable for a single-node deployment.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:    "./complaintdesk.db",
			Timeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		WebSocket: WebSocketConfig{
			PingInterval:   30 * time.Second,
			ReadTimeout:    60 * time.Second,
			WriteTimeout:   10 * time.Second,
			BufferSize:     100,
			MaxMessageSize: 4096,
		},
		Auth: AuthConfig{
			Issuer:   "complaintdesk",
			TokenTTL: 24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			MaxRequests: 10,
			Window:      15 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Public: PublicConfig{
			BaseURL: "http://localhost:3000",
		},
	}
}

// Validate rejects settings that would fail at runtime.
// The auth secret is checked where credentials are built, so commands that
// never verify tokens can run without one.
func (c *Config) Validate() error {
	switch {
	case c.Database.Path == "":
		return fmt.Errorf("%w: database path cannot be empty", ErrInvalidConfig)
	case c.Database.Timeout <= 0:
		return fmt.Errorf("%w: database timeout must be positive", ErrInvalidConfig)
	case c.HTTP.Port <= 0 || c.HTTP.Port > 65535:
		return fmt.Errorf("%w: HTTP port must be between 1 and 65535", ErrInvalidConfig)
	case c.HTTP.Host == "":
		return fmt.Errorf("%w: HTTP host cannot be empty", ErrInvalidConfig)
	case c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0:
		return fmt.Errorf("%w: HTTP timeouts must be positive", ErrInvalidConfig)
	case c.HTTP.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: HTTP shutdown timeout must be positive", ErrInvalidConfig)
	case c.WebSocket.PingInterval <= 0:
		return fmt.Errorf("%w: WebSocket ping interval must be positive", ErrInvalidConfig)
	case c.WebSocket.ReadTimeout <= c.WebSocket.PingInterval:
		return fmt.Errorf("%w: WebSocket read timeout must exceed the ping interval", ErrInvalidConfig)
	case c.WebSocket.WriteTimeout <= 0:
		return fmt.Errorf("%w: WebSocket write timeout must be positive", ErrInvalidConfig)
	case c.WebSocket.BufferSize <= 0:
		return fmt.Errorf("%w: WebSocket buffer size must be positive", ErrInvalidConfig)
	case c.WebSocket.MaxMessageSize <= 0:
		return fmt.Errorf("%w: WebSocket max message size must be positive", ErrInvalidConfig)
	case c.Auth.Issuer == "":
		return fmt.Errorf("%w: auth issuer cannot be empty", ErrInvalidConfig)
	case c.Auth.TokenTTL <= 0:
		return fmt.Errorf("%w: auth token TTL must be positive", ErrInvalidConfig)
	case c.RateLimit.MaxRequests <= 0 || c.RateLimit.Window <= 0:
		return fmt.Errorf("%w: rate limit must allow at least one request per positive window", ErrInvalidConfig)
	case c.Public.BaseURL == "":
		return fmt.Errorf("%w: public base URL cannot be empty", ErrInvalidConfig)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.HTTP.Host, c.HTTP.Port)
}

// LoadFromFile overlays a YAML file onto cfg. Keys absent from the file keep
// their current values.
func LoadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv overlays COMPLAINTDESK_* environment variables onto cfg.
// Leaf fields carry split_words instead of envconfig tags because a tag also
// matches the unprefixed name, and Database.Path must never read $PATH.
func LoadFromEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// Options selects the optional sources for Load.
type Options struct {
	File    string // YAML file; empty skips it
	EnvFile string // dotenv file; empty tries ./.env
}

// Load builds the configuration with precedence defaults < file < environment.
// A dotenv file only fills variables that are not already set.
func Load(opts Options) (*Config, error) {
	cfg := DefaultConfig()

	if opts.File != "" {
		if err := LoadFromFile(cfg, opts.File); err != nil {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		if opts.EnvFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
