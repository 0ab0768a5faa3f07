// Command migrate applies the PostgreSQL schema:
//
//	go run ./cmd/migrate          # apply pending migrations
//	go run ./cmd/migrate status   # print migration state
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/anurag-po/CODSOFT/internal/infrastructure/config"
	"github.com/anurag-po/CODSOFT/internal/infrastructure/db/postgres"
	"github.com/anurag-po/CODSOFT/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadMigrate(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "migrate"})

	db, err := postgres.Connect(ctx, cfg.Postgres.DSN, postgres.DefaultOptions())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Error().Err(err).Msg("failed to run migrations")
			os.Exit(1)
		}
		log.Info().Msg("migrations applied")
	case "status":
		if err := postgres.MigrationStatus(ctx, db); err != nil {
			log.Error().Err(err).Msg("failed to read migration status")
			os.Exit(1)
		}
	default:
		log.Error().Str("command", cmd).Msg("unknown command, want up or status")
		os.Exit(2)
	}
}
