package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/userauth/internal/flagx"
)

var serverFlags = []string{"-a", "-g", "-d", "-k", "-s", "-t", "-l"}

// parseFlags overlays the server flags found in args.
//
//	-a string   HTTP bind address (e.g. ":3111")
//	-g string   gRPC health bind address, "" to disable
//	-d string   database URL
//	-k string   database auth token
//	-s string   token signing secret
//	-t int      token lifetime in minutes, 0 for no expiry
//	-l string   log level
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.DatabaseURL, "d", config.DatabaseURL, "database URL")
	fs.StringVar(&config.DatabaseAuthToken, "k", config.DatabaseAuthToken, "database auth token")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	ttl := fs.Int("t", int(config.TokenTTL.Minutes()), "token lifetime (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// only touch TokenTTL when -t was given, so sub-minute values from
	// JSON or env survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenTTL = time.Duration(*ttl) * time.Minute
		}
	})
	return nil
}
