// Package handler is the serverless entry point: the platform calls Handler
// for every request instead of running cmd/app.
package handler

import (
	"net/http"
	"sync"

	"tourbook/config"
	"tourbook/di"
	"tourbook/shared/logger"
	"tourbook/shared/timezone"
	transport "tourbook/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)
		timezone.Init(cfg.App.Timezone)

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
