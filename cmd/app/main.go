package main

import (
	"github.com/rs/zerolog/log"

	"tourbook/config"
	"tourbook/di"
	"tourbook/helper"
	"tourbook/shared/logger"
	"tourbook/shared/timezone"
)

// @title Tourbook Admin API
// @version 1.0
// @description Approve or reject tour booking requests, capture payments and follow up undelivered emails.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg.App.Timezone)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to run database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
