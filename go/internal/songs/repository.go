package songs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/airwavehq/airwave/go/internal/models"
	"github.com/airwavehq/airwave/go/internal/songs/db"
	"github.com/airwavehq/airwave/go/internal/sqlutil"
)

// ErrSongNotFound is returned when a song id is unknown.
var ErrSongNotFound = errors.New("song not found")

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateSong(ctx context.Context, arg db.CreateSongParams) (db.Song, error)
	GetSong(ctx context.Context, id int64) (db.Song, error)
	ListSongs(ctx context.Context) ([]db.Song, error)
	DeleteSong(ctx context.Context, id int64) error
}

// Repository implements song data access operations
type Repository struct {
	queries Querier
}

// NewRepository creates a new songs repository
func NewRepository(querier Querier) *Repository {
	return &Repository{
		queries: querier,
	}
}

// CreateSong persists a new catalog entry.
func (r *Repository) CreateSong(ctx context.Context, song *models.Song) (*models.Song, error) {
	dbSong, err := r.queries.CreateSong(ctx, db.CreateSongParams{
		Title:       song.Title,
		Artist:      song.Artist,
		Description: toNullString(song.Description),
		FilePath:    song.FilePath,
		CoverImage:  sqlutil.ToSqlString(song.CoverImage),
		Duration:    sqlutil.ToSqlInt32(song.Duration),
		FileSize:    song.FileSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create song: %w", err)
	}
	return r.dbSongToModel(dbSong), nil
}

// GetSong retrieves a song by ID
func (r *Repository) GetSong(ctx context.Context, id int64) (*models.Song, error) {
	dbSong, err := r.queries.GetSong(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSongNotFound
		}
		return nil, fmt.Errorf("failed to get song: %w", err)
	}
	return r.dbSongToModel(dbSong), nil
}

// ListSongs returns the catalog, newest first.
func (r *Repository) ListSongs(ctx context.Context) ([]*models.Song, error) {
	dbSongs, err := r.queries.ListSongs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	songs := make([]*models.Song, 0, len(dbSongs))
	for _, s := range dbSongs {
		songs = append(songs, r.dbSongToModel(s))
	}
	return songs, nil
}

// DeleteSong deletes a song by ID
func (r *Repository) DeleteSong(ctx context.Context, id int64) error {
	if err := r.queries.DeleteSong(ctx, id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return nil
}

// dbSongToModel converts a database song to domain model
func (r *Repository) dbSongToModel(s db.Song) *models.Song {
	return &models.Song{
		ID:          s.ID,
		Title:       s.Title,
		Artist:      s.Artist,
		Description: sqlutil.FromSqlString(s.Description, ""),
		FilePath:    s.FilePath,
		CoverImage:  sqlutil.FromSqlStringPtr(s.CoverImage),
		Duration:    sqlutil.FromSqlInt32(s.Duration),
		FileSize:    s.FileSize,
		CreatedAt:   s.CreatedAt,
	}
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
