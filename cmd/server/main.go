package main

import (
	_ "taskmanager/docs"
	"taskmanager/internal/config"
	"taskmanager/internal/logger"
	"taskmanager/internal/server"

	"github.com/rs/zerolog/log"
)

// @title           Task Manager API
// @version         1.0
// @description     Users, bearer-token auth and owner-scoped tasks, with a websocket mirror at /ws.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Server initialization failed")
	}

	s.Run()
}
