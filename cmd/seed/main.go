package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"india_travel/internal/adapters/observability"
	"india_travel/internal/app"
	"india_travel/internal/catalog"
	"india_travel/internal/domain"
	"india_travel/internal/shared"
	mysqlrepo "india_travel/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(observability.LogOptions{
		Env: cfg.AppEnv, Level: cfg.LogLevel, File: cfg.LogFile,
	})

	log.Info().Int("workers", cfg.SeedWorkers).Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	var src domain.CatalogSource = catalog.EmbeddedSource{}
	if cfg.CatalogFile != "" {
		src = catalog.FileSource{Path: cfg.CatalogFile}
	}

	n, err := app.NewSeedService(src, mysqlrepo.New(db), cfg.SeedWorkers).Seed(ctx)
	if err != nil {
		log.Fatal().Err(err).Int("written", n).Msg("seeding failed")
	}
	log.Info().Int("written", n).Msg("seeding completed")
}
