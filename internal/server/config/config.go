// Package config handles configuration for the API server: built-in
// defaults, an optional JSON file, environment variables and command-line
// flags, applied in that order.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/dmitrijs2005/userauth/internal/flagx"
)

// Config holds runtime settings for the API server. It is read once at
// start-up and never mutated afterwards.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the JSON/HTTP API.
//   - EndpointAddrGRPC: bind address of the gRPC health service; empty disables it.
//   - DatabaseURL: credential store location. postgres:// URLs select
//     PostgreSQL (pgx); file:, sqlite: and bare paths select SQLite.
//   - DatabaseAuthToken: optional credential for a remote store.
//   - SecretKey: HMAC secret for signing session tokens (HS256).
//   - TokenTTL: session token lifetime; 0 issues tokens without expiry.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	EndpointAddrHTTP  string        `env:"HTTP_ADDR"`
	EndpointAddrGRPC  string        `env:"GRPC_ADDR"`
	DatabaseURL       string        `env:"DATABASE_URL"`
	DatabaseAuthToken string        `env:"DATABASE_AUTH_TOKEN"`
	SecretKey         string        `env:"JWT_SECRET"`
	TokenTTL          time.Duration `env:"TOKEN_TTL"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"`
	LogLevel          string        `env:"LOG_LEVEL"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key default is insecure and must be overridden in production.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3111"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseURL = "file:local.db"
	c.DatabaseAuthToken = ""
	c.SecretKey = "supersecret"
	c.TokenTTL = 24 * time.Hour
	c.ShutdownTimeout = 10 * time.Second
	c.LogLevel = "info"
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database url is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.TokenTTL < 0 {
		errs = append(errs, errors.New("token ttl must not be negative"))
	}
	if c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("http address is required"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from os.Args and the process environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, the JSON file named by -c/-config, environment
// variables and finally the flags in args, then validates the result.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigPath(args); path != "" {
		if err := parseJSON(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
