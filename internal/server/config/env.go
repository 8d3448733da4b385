package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays variables that are set in the environment; unset
// variables leave the current value untouched.
//
//	HTTP_ADDR, GRPC_ADDR, DATABASE_URL, DATABASE_AUTH_TOKEN, JWT_SECRET,
//	TOKEN_TTL, SHUTDOWN_TIMEOUT, LOG_LEVEL
func parseEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
