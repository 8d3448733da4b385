package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/userauth/internal/timex"
)

// JSONConfig is the on-disk shape of the configuration file. Durations may be
// strings ("15m") or integer nanoseconds. Fields left out keep their current
// value.
type JSONConfig struct {
	EndpointAddrHTTP  string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC  *string         `json:"endpoint_addr_grpc"`
	DatabaseURL       string          `json:"database_url"`
	DatabaseAuthToken string          `json:"database_auth_token"`
	SecretKey         string          `json:"secret_key"`
	TokenTTL          *timex.Duration `json:"token_ttl"`
	ShutdownTimeout   *timex.Duration `json:"shutdown_timeout"`
	LogLevel          string          `json:"log_level"`
}

func parseJSON(config *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JSONConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	// an explicit "" disables the gRPC endpoint
	if c.EndpointAddrGRPC != nil {
		config.EndpointAddrGRPC = *c.EndpointAddrGRPC
	}
	setString(&config.DatabaseURL, c.DatabaseURL)
	setString(&config.DatabaseAuthToken, c.DatabaseAuthToken)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenTTL != nil {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
