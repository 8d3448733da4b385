// Package config loads runtime configuration for the userauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables (API_URL, SESSION_DB, CLIENT_TIMEOUT,
//     ONLINE_CHECK_INTERVAL, LOG_LEVEL).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the API server
//	-f string   path of the local session database
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations are timex.Duration, so either "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:3111",
//	  "storage_path": "session.db",
//	  "timeout": "10s",
//	  "online_check_interval": "5s",
//	  "log_level": "warn"
//	}
package config
