package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/gateway"
	"github.com/airwavehq/airwave/go/internal/playback"
	"github.com/airwavehq/airwave/go/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Connect to database
	database, err := setupDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()

	// Blob storage for song audio and cover images
	blobs, err := storage.NewFilesystemStore(config.Storage.Root, config.Storage.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create blob store")
	}

	// Broadcast publisher
	natsCfg := playback.DefaultNATSConfig()
	natsCfg.URL = config.Broker.URL
	publisher, err := playback.NewNATSPublisher(natsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to broker")
	}
	defer publisher.Close()

	// Wire services
	services := setupServices(database, publisher, blobs, config)

	// Gateway: WebSocket pool fed by the broker subscription
	gatewayConfig := gateway.DefaultConfig()
	gatewayConfig.ConsumerConfig.URL = config.Broker.URL
	gatewayService, err := gateway.NewService(gatewayConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gateway service")
	}

	server := setupServer(services, gatewayService, config)

	// signal-aware context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := gatewayService.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway service failed")
		}
	}()

	if services.Pruner != nil && config.Playback.DeviceTTL > 0 {
		if err := services.Pruner.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to start device pruner")
		}
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("shutdown complete")
}
