package playlists

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/models"
)

// ErrInvalidPlaylist rejects a request before any mutation.
var ErrInvalidPlaylist = errors.New("invalid playlist request")

// PlaylistsRepository defines what the app layer needs from the repository
type PlaylistsRepository interface {
	CreatePlaylist(ctx context.Context, ownerID uuid.UUID, name string) (*models.Playlist, error)
	GetPlaylist(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	ListPlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Playlist, error)
	RenamePlaylist(ctx context.Context, id uuid.UUID, name string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id uuid.UUID) error
	AddSong(ctx context.Context, playlistID uuid.UUID, songID int64) error
	RemoveSong(ctx context.Context, playlistID uuid.UUID, songID int64) error
}

// OwnerResolver supplies the account playlists are listed and created under.
type OwnerResolver interface {
	DefaultOwner(ctx context.Context) (uuid.UUID, error)
}

// App handles playlist business logic.
type App struct {
	repo   PlaylistsRepository
	owners OwnerResolver
}

// NewApp creates a new playlists App
func NewApp(repo PlaylistsRepository, owners OwnerResolver) *App {
	return &App{
		repo:   repo,
		owners: owners,
	}
}

// CreatePlaylist creates an empty playlist owned by the default account.
func (a *App) CreatePlaylist(ctx context.Context, name string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPlaylist)
	}

	owner, err := a.owners.DefaultOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlist owner: %w", err)
	}

	playlist, err := a.repo.CreatePlaylist(ctx, owner, name)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("playlist_id", playlist.ID.String()).
		Str("name", playlist.Name).
		Msg("created playlist")
	return playlist, nil
}

// GetPlaylist retrieves a playlist with its songs.
func (a *App) GetPlaylist(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	return a.repo.GetPlaylist(ctx, id)
}

// ListPlaylists returns the default account's playlists.
func (a *App) ListPlaylists(ctx context.Context) ([]*models.Playlist, error) {
	owner, err := a.owners.DefaultOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve playlist owner: %w", err)
	}
	return a.repo.ListPlaylistsByOwner(ctx, owner)
}

// RenamePlaylist updates the playlist name.
func (a *App) RenamePlaylist(ctx context.Context, id uuid.UUID, name string) (*models.Playlist, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPlaylist)
	}
	return a.repo.RenamePlaylist(ctx, id, name)
}

// DeletePlaylist deletes a playlist. The playlist must exist.
func (a *App) DeletePlaylist(ctx context.Context, id uuid.UUID) error {
	if _, err := a.repo.GetPlaylist(ctx, id); err != nil {
		return err
	}
	return a.repo.DeletePlaylist(ctx, id)
}

// AddSong appends a song to the playlist.
func (a *App) AddSong(ctx context.Context, playlistID uuid.UUID, songID int64) error {
	if _, err := a.repo.GetPlaylist(ctx, playlistID); err != nil {
		return err
	}
	return a.repo.AddSong(ctx, playlistID, songID)
}

// RemoveSong removes a song from the playlist.
func (a *App) RemoveSong(ctx context.Context, playlistID uuid.UUID, songID int64) error {
	if _, err := a.repo.GetPlaylist(ctx, playlistID); err != nil {
		return err
	}
	return a.repo.RemoveSong(ctx, playlistID, songID)
}
