package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected func() *Config
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", ":6000", "-d", "postgres://db", "-k", "token",
				"-s", "secret", "-t", "15", "-l", "debug",
			},
			expected: func() *Config {
				c := defaults()
				c.EndpointAddrHTTP = "127.0.0.1:9090"
				c.EndpointAddrGRPC = ":6000"
				c.DatabaseURL = "postgres://db"
				c.DatabaseAuthToken = "token"
				c.SecretKey = "secret"
				c.TokenTTL = 15 * time.Minute
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:     "unrelated args ignored",
			args:     []string{"-c", "cfg.json", "serve", "-x", "1"},
			expected: defaults,
		},
		{
			name: "ttl zero disables expiry",
			args: []string{"-t=0"},
			expected: func() *Config {
				c := defaults()
				c.TokenTTL = 0
				return c
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			require.NoError(t, parseFlags(cfg, tt.args))
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}

func TestParseFlags_KeepsSubMinuteTTLWhenNotGiven(t *testing.T) {
	cfg := defaults()
	cfg.TokenTTL = 90 * time.Second
	require.NoError(t, parseFlags(cfg, []string{"-s", "x"}))
	assert.Equal(t, 90*time.Second, cfg.TokenTTL)
}
