package main

import (
	"fmt"
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/airwavehq/airwave/go/internal/gateway"
)

func setupServer(services *Services, gw *gateway.Service, config *Config) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedOrigins: []string{"*"},
		AllowedHeaders: []string{"*"},
	})

	// Register services
	services.Playback.RegisterRoutes(mux)
	services.Songs.RegisterRoutes(mux)
	services.Playlists.RegisterRoutes(mux)

	// WebSocket fan-out routes
	gw.RegisterRoutes(mux)

	// Serve uploaded blobs (audio and covers) under the storage base URL
	filesPrefix := config.Storage.BaseURL + "/"
	mux.Handle(filesPrefix, http.StripPrefix(filesPrefix, http.FileServer(http.Dir(config.Storage.Root))))

	// Add health check endpoint
	setupHealthCheck(mux)

	// Wrap with CORS
	handler := c.Handler(mux)

	// Setup HTTP/2 server
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Server.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error().Err(err).Msg("failed to write health check response")
		}
	})
}
