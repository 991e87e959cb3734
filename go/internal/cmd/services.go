package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/airwavehq/airwave/go/internal/playback"
	"github.com/airwavehq/airwave/go/internal/playlists"
	playlistsdb "github.com/airwavehq/airwave/go/internal/playlists/db"
	"github.com/airwavehq/airwave/go/internal/songs"
	songsdb "github.com/airwavehq/airwave/go/internal/songs/db"
	"github.com/airwavehq/airwave/go/internal/storage"
	"github.com/airwavehq/airwave/go/internal/users"
	usersdb "github.com/airwavehq/airwave/go/internal/users/db"
)

type Services struct {
	Playback  *playback.Service
	Songs     *songs.Service
	Playlists *playlists.Service
	Pruner    *playback.Pruner
}

func setupServices(database *sql.DB, publisher playback.StatePublisher, blobs storage.BlobStore, config *Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer
	clock := clockwork.NewRealClock()

	// Users (demo account owner for sessions and playlists)
	userQueries := usersdb.New(database)
	userRepo := users.NewRepository(userQueries)
	userApp := users.NewApp(userRepo)

	// Playback
	playbackRepo := playback.NewRepository(database)
	playbackApp := playback.NewApp(playbackRepo, publisher, userApp, clock)
	playbackService := playback.NewService(playbackApp)

	// Songs
	songQueries := songsdb.New(database)
	songRepo := songs.NewRepository(songQueries)
	songApp := songs.NewApp(songRepo, blobs, clock)
	songService := songs.NewService(songApp)

	// Playlists
	playlistQueries := playlistsdb.New(database)
	playlistRepo := playlists.NewRepository(playlistQueries)
	playlistApp := playlists.NewApp(playlistRepo, userApp)
	playlistService := playlists.NewService(playlistApp)

	// Stale-device pruner (disabled unless a device TTL is configured)
	pruner := playback.NewPruner(playbackApp, clock, playback.PrunerConfig{
		Interval:  config.Playback.PruneInterval,
		DeviceTTL: config.Playback.DeviceTTL,
	})

	return &Services{
		Playback:  playbackService,
		Songs:     songService,
		Playlists: playlistService,
		Pruner:    pruner,
	}
}
