package playlists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/airwavehq/airwave/go/internal/models"
	"github.com/airwavehq/airwave/go/internal/playlists/db"
)

// ErrPlaylistNotFound is returned when a playlist id is unknown.
var ErrPlaylistNotFound = errors.New("playlist not found")

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreatePlaylist(ctx context.Context, arg db.CreatePlaylistParams) (db.Playlist, error)
	GetPlaylist(ctx context.Context, id uuid.UUID) (db.Playlist, error)
	ListPlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Playlist, error)
	RenamePlaylist(ctx context.Context, arg db.RenamePlaylistParams) (db.Playlist, error)
	DeletePlaylist(ctx context.Context, id uuid.UUID) error
	AddPlaylistSong(ctx context.Context, arg db.AddPlaylistSongParams) error
	RemovePlaylistSong(ctx context.Context, arg db.RemovePlaylistSongParams) error
	ListPlaylistSongIDs(ctx context.Context, playlistID uuid.UUID) ([]int64, error)
}

// Repository implements playlist data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new playlists repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// CreatePlaylist creates an empty playlist for the owner.
func (r *Repository) CreatePlaylist(ctx context.Context, ownerID uuid.UUID, name string) (*models.Playlist, error) {
	dbPlaylist, err := r.queries.CreatePlaylist(ctx, db.CreatePlaylistParams{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}
	return r.dbPlaylistToModel(dbPlaylist, nil), nil
}

// GetPlaylist retrieves a playlist with its song ids in order.
func (r *Repository) GetPlaylist(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	dbPlaylist, err := r.queries.GetPlaylist(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	songIDs, err := r.queries.ListPlaylistSongIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist songs: %w", err)
	}
	return r.dbPlaylistToModel(dbPlaylist, songIDs), nil
}

// ListPlaylistsByOwner returns the owner's playlists, newest first.
func (r *Repository) ListPlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Playlist, error) {
	dbPlaylists, err := r.queries.ListPlaylistsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}

	playlists := make([]*models.Playlist, 0, len(dbPlaylists))
	for _, p := range dbPlaylists {
		playlists = append(playlists, r.dbPlaylistToModel(p, nil))
	}
	return playlists, nil
}

// RenamePlaylist updates the playlist name.
func (r *Repository) RenamePlaylist(ctx context.Context, id uuid.UUID, name string) (*models.Playlist, error) {
	dbPlaylist, err := r.queries.RenamePlaylist(ctx, db.RenamePlaylistParams{ID: id, Name: name})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to rename playlist: %w", err)
	}
	return r.dbPlaylistToModel(dbPlaylist, nil), nil
}

// DeletePlaylist deletes a playlist by ID
func (r *Repository) DeletePlaylist(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeletePlaylist(ctx, id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

// AddSong appends a song to the end of the playlist. Adding a song that is
// already present is a no-op.
func (r *Repository) AddSong(ctx context.Context, playlistID uuid.UUID, songID int64) error {
	if err := r.queries.AddPlaylistSong(ctx, db.AddPlaylistSongParams{
		PlaylistID: playlistID,
		SongID:     songID,
	}); err != nil {
		return fmt.Errorf("failed to add playlist song: %w", err)
	}
	return nil
}

// RemoveSong removes a song from the playlist.
func (r *Repository) RemoveSong(ctx context.Context, playlistID uuid.UUID, songID int64) error {
	if err := r.queries.RemovePlaylistSong(ctx, db.RemovePlaylistSongParams{
		PlaylistID: playlistID,
		SongID:     songID,
	}); err != nil {
		return fmt.Errorf("failed to remove playlist song: %w", err)
	}
	return nil
}

// dbPlaylistToModel converts a database playlist to domain model
func (r *Repository) dbPlaylistToModel(p db.Playlist, songIDs []int64) *models.Playlist {
	return &models.Playlist{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		SongIDs:   songIDs,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
