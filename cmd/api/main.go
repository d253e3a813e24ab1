package main

import (
	"context"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/infrastructure/logging"
	"rentdesk-backend/internal/interfaces/router"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load")
	}
	logging.Setup(cfg.LogLevel, cfg.IsProduction())

	app, db, rdb, err := router.CreateApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("app create")
	}

	// Verify connections before accepting traffic.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database handle")
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database connection failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connected")
	if rdb != nil {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		log.Info().Msg("redis connected")
	}

	log.Info().Str("url", "http://localhost:"+cfg.Port).Str("health", "http://localhost:"+cfg.Port+"/health/json").Msg("server running")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}
