package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/zaexus939-netizen/harramball/config"
	"github.com/zaexus939-netizen/harramball/game"
	"github.com/zaexus939-netizen/harramball/logger"
)

func CreateServer(cfg config.Config, handler *game.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{
			"Content-Type",
			"Origin",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/", handler.StatusPageHandler)
	r.GET("/health", handler.HealthHandler)
	r.GET("/ws", handler.ConnectHandler)

	return r
}

func main() {
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	log := logger.New(cfg.Debug)

	registry := game.NewRegistry(log)
	hub := game.NewHub(log)
	router := game.NewRouter(registry, hub, log)
	handler := game.NewHandler(registry, hub, router, log)

	r := CreateServer(cfg, handler)

	log.Info().Str("port", cfg.Port).Msg("harramball relay listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
