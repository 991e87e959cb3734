package songs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/models"
	"github.com/airwavehq/airwave/go/internal/storage"
)

// ErrInvalidUpload rejects an upload before any blob or row is written.
var ErrInvalidUpload = errors.New("invalid upload")

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".flac": true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// SongsRepository defines what the app layer needs from the repository
type SongsRepository interface {
	CreateSong(ctx context.Context, song *models.Song) (*models.Song, error)
	GetSong(ctx context.Context, id int64) (*models.Song, error)
	ListSongs(ctx context.Context) ([]*models.Song, error)
	DeleteSong(ctx context.Context, id int64) error
}

// App handles song catalog business logic: upload, listing, deletion and
// streaming. Audio duration probing is an external concern; entries are
// created without a duration until something fills it in.
type App struct {
	repo  SongsRepository
	blobs storage.BlobStore
	clock clockwork.Clock
}

// NewApp creates a new songs App
func NewApp(repo SongsRepository, blobs storage.BlobStore, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		blobs: blobs,
		clock: clock,
	}
}

// UploadSong stores the audio blob (and cover, when present) and creates the
// catalog row. The blob key embeds a uuid so re-uploads never collide.
func (a *App) UploadSong(ctx context.Context, req UploadSongRequest) (*models.Song, error) {
	if err := a.validateUpload(req); err != nil {
		return nil, err
	}

	audioKey := a.blobKey("songs", req.FileName)
	size, err := a.blobs.Put(ctx, audioKey, req.File)
	if err != nil {
		return nil, fmt.Errorf("failed to store audio blob: %w", err)
	}

	var coverKey *string
	if req.Cover != nil {
		key := a.blobKey("covers", req.CoverName)
		if _, err := a.blobs.Put(ctx, key, req.Cover); err != nil {
			a.removeBlob(ctx, audioKey)
			return nil, fmt.Errorf("failed to store cover blob: %w", err)
		}
		coverKey = &key
	}

	song, err := a.repo.CreateSong(ctx, &models.Song{
		Title:       req.Title,
		Artist:      req.Artist,
		Description: req.Description,
		FilePath:    audioKey,
		CoverImage:  coverKey,
		FileSize:    size,
	})
	if err != nil {
		a.removeBlob(ctx, audioKey)
		if coverKey != nil {
			a.removeBlob(ctx, *coverKey)
		}
		return nil, err
	}

	log.Info().
		Int64("song_id", song.ID).
		Str("title", song.Title).
		Str("artist", song.Artist).
		Int64("bytes", size).
		Msg("uploaded song")
	return song, nil
}

// GetSong retrieves a song by ID
func (a *App) GetSong(ctx context.Context, id int64) (*models.Song, error) {
	return a.repo.GetSong(ctx, id)
}

// ListSongs returns the catalog, newest first.
func (a *App) ListSongs(ctx context.Context) ([]*models.Song, error) {
	return a.repo.ListSongs(ctx)
}

// DeleteSong removes the catalog row and its blobs. Blob removal failures
// are logged but do not fail the delete: the row is authoritative and an
// orphaned blob is just wasted space.
func (a *App) DeleteSong(ctx context.Context, id int64) error {
	song, err := a.repo.GetSong(ctx, id)
	if err != nil {
		return err
	}

	if err := a.repo.DeleteSong(ctx, id); err != nil {
		return err
	}

	a.removeBlob(ctx, song.FilePath)
	if song.CoverImage != nil {
		a.removeBlob(ctx, *song.CoverImage)
	}

	log.Info().Int64("song_id", id).Msg("deleted song")
	return nil
}

// StreamSong opens the audio blob for a song.
func (a *App) StreamSong(ctx context.Context, id int64) (*models.Song, io.ReadCloser, error) {
	song, err := a.repo.GetSong(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := a.blobs.Open(ctx, song.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audio blob: %w", err)
	}
	return song, rc, nil
}

// ResolveURL maps a blob key to its public URL.
func (a *App) ResolveURL(key string) string {
	return a.blobs.URL(key)
}

func (a *App) validateUpload(req UploadSongRequest) error {
	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidUpload)
	}
	if req.Artist == "" {
		return fmt.Errorf("%w: artist is required", ErrInvalidUpload)
	}
	if req.File == nil {
		return fmt.Errorf("%w: file is required", ErrInvalidUpload)
	}
	if !audioExtensions[strings.ToLower(filepath.Ext(req.FileName))] {
		return fmt.Errorf("%w: unsupported audio format", ErrInvalidUpload)
	}
	if req.Cover != nil && !imageExtensions[strings.ToLower(filepath.Ext(req.CoverName))] {
		return fmt.Errorf("%w: unsupported cover format", ErrInvalidUpload)
	}
	return nil
}

func (a *App) blobKey(prefix, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%s_%d%s", prefix, uuid.New().String(), a.clock.Now().Unix(), ext)
}

func (a *App) removeBlob(ctx context.Context, key string) {
	if err := a.blobs.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to remove blob")
	}
}
