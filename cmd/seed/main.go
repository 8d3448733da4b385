// Command seed inserts the demo users into the store named by DATABASE_URL
// (or -d), running migrations first.
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/userauth/internal/cryptox"
	"github.com/dmitrijs2005/userauth/internal/logging"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/dmitrijs2005/userauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/userauth/internal/server/seed"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	db, rm, err := repomanager.Open(ctx, cfg.DatabaseURL, cfg.DatabaseAuthToken)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	if _, err := seed.Seed(ctx, db, rm, cryptox.NewArgon2Hasher(), logger, seed.SampleUsers); err != nil {
		logger.Error(ctx, "error seeding database", "error", err)
		db.Close()
		os.Exit(1)
	}
}
