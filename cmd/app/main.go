package main

import (
	"os"
	"todolist/config"
	"todolist/di"
	"todolist/helper"
	"todolist/shared/logger"
	"todolist/shared/timezone"

	"github.com/rs/zerolog/log"
)

// @title Todolist
// @version 1.0
// @description Server rendered to-do lists scoped to the signed-in user.
// @BasePath /
func main() {
	logger.InitLogger()

	cfg := config.Get()

	if !cfg.IsDevelopment() {
		logger.UseJSONOutput(os.Stdout)
	}

	logger.SetLogLevel(cfg)

	if err := timezone.Init(cfg.App.Timezone); err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("Failed to load timezone")
	}

	if cfg.DB.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Migration failed")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
