package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"linktracker/config"
	"linktracker/database"
	"linktracker/handlers"
	"linktracker/logger"
	"linktracker/middleware"
	"linktracker/services"
	"linktracker/storage"
)

func main() {
	logger.Initialize()

	cfg := config.MustLoadConfig()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	// Reserved for a future caching layer; only health-checked for now.
	rdb, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	linkStore := storage.NewGormLinkStore(db)
	clickStore := storage.NewGormClickStore(db)

	fraud := services.NewRandomFraudChecker(
		time.Duration(cfg.Fraud.DelayMS)*time.Millisecond,
		cfg.Fraud.ValidRate,
	)

	linkService := services.NewLinkService(linkStore)
	analyticsService := services.NewAnalyticsService(
		linkService,
		clickStore,
		fraud,
		cfg.WebServer.BaseURL,
		cfg.Rewards.CreditPerClick,
	)

	handler := handlers.New(linkService, analyticsService, db, rdb, cfg.WebServer.BaseURL)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.WebServer.IP + ":" + cfg.WebServer.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Link tracker starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	}

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("Redis close error")
	}

	log.Info().Msg("Server stopped")
}
