package handler

import (
	"net/http"
	"sync"
	"todolist/config"
	"todolist/di"
	"todolist/shared/logger"
	"todolist/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	app  http.Handler
	once sync.Once
)

// Handler is the serverless entry point. The service graph is built on the
// first invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if err := timezone.Init(cfg.App.Timezone); err != nil {
			log.Error().Err(err).Str("timezone", cfg.App.Timezone).Msg("Failed to load timezone, using UTC")
		}

		app = di.InitializeService().Handler()
	})

	app.ServeHTTP(w, r)
}
