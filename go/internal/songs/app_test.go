package songs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/airwavehq/airwave/go/internal/models"
)

type fakeRepo struct {
	songs  map[int64]*models.Song
	nextID int64
	err    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{songs: make(map[int64]*models.Song), nextID: 1}
}

func (r *fakeRepo) CreateSong(ctx context.Context, song *models.Song) (*models.Song, error) {
	if r.err != nil {
		return nil, r.err
	}
	created := *song
	created.ID = r.nextID
	r.nextID++
	r.songs[created.ID] = &created
	return &created, nil
}

func (r *fakeRepo) GetSong(ctx context.Context, id int64) (*models.Song, error) {
	song, ok := r.songs[id]
	if !ok {
		return nil, ErrSongNotFound
	}
	return song, nil
}

func (r *fakeRepo) ListSongs(ctx context.Context) ([]*models.Song, error) {
	var out []*models.Song
	for _, s := range r.songs {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) DeleteSong(ctx context.Context, id int64) error {
	delete(r.songs, id)
	return nil
}

// memStore is an in-memory BlobStore for tests.
type memStore struct {
	blobs map[string][]byte
	fail  bool
}

func newMemStore() *memStore {
	return &memStore{blobs: make(map[string][]byte)}
}

func (s *memStore) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	if s.fail {
		return 0, errors.New("store unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.blobs[key] = data
	return int64(len(data)), nil
}

func (s *memStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	delete(s.blobs, key)
	return nil
}

func (s *memStore) URL(key string) string {
	return "/api/files/" + key
}

func newTestApp() (*App, *fakeRepo, *memStore) {
	repo := newFakeRepo()
	blobs := newMemStore()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	return NewApp(repo, blobs, clock), repo, blobs
}

func TestUploadSong(t *testing.T) {
	app, repo, blobs := newTestApp()

	song, err := app.UploadSong(context.Background(), UploadSongRequest{
		Title:    "Midnight Drive",
		Artist:   "Neon Harbor",
		FileName: "midnight.mp3",
		File:     strings.NewReader("audio-bytes"),
	})
	if err != nil {
		t.Fatalf("UploadSong: %v", err)
	}

	if song.ID == 0 {
		t.Error("song id not assigned")
	}
	if song.FileSize != int64(len("audio-bytes")) {
		t.Errorf("file size = %d, want %d", song.FileSize, len("audio-bytes"))
	}
	if !strings.HasPrefix(song.FilePath, "songs/") || !strings.HasSuffix(song.FilePath, ".mp3") {
		t.Errorf("file path %q not under songs/ with .mp3 suffix", song.FilePath)
	}
	if _, ok := blobs.blobs[song.FilePath]; !ok {
		t.Error("audio blob not stored")
	}
	if _, ok := repo.songs[song.ID]; !ok {
		t.Error("catalog row not created")
	}
}

func TestUploadSongWithCover(t *testing.T) {
	app, _, blobs := newTestApp()

	song, err := app.UploadSong(context.Background(), UploadSongRequest{
		Title:     "Paper Lanterns",
		Artist:    "June Okafor",
		FileName:  "paper.mp3",
		File:      strings.NewReader("audio"),
		CoverName: "paper.jpg",
		Cover:     strings.NewReader("image"),
	})
	if err != nil {
		t.Fatalf("UploadSong: %v", err)
	}
	if song.CoverImage == nil {
		t.Fatal("cover image key not set")
	}
	if _, ok := blobs.blobs[*song.CoverImage]; !ok {
		t.Error("cover blob not stored")
	}
}

func TestUploadSongRejectsBadExtension(t *testing.T) {
	app, repo, blobs := newTestApp()

	_, err := app.UploadSong(context.Background(), UploadSongRequest{
		Title:    "Nope",
		Artist:   "Nope",
		FileName: "script.exe",
		File:     strings.NewReader("x"),
	})
	if !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("err = %v, want ErrInvalidUpload", err)
	}
	if len(blobs.blobs) != 0 {
		t.Error("rejected upload wrote a blob")
	}
	if len(repo.songs) != 0 {
		t.Error("rejected upload created a row")
	}
}

func TestUploadSongValidatesRequiredFields(t *testing.T) {
	app, _, _ := newTestApp()

	for _, req := range []UploadSongRequest{
		{Artist: "a", FileName: "x.mp3", File: strings.NewReader("x")},
		{Title: "t", FileName: "x.mp3", File: strings.NewReader("x")},
		{Title: "t", Artist: "a", FileName: "x.mp3"},
	} {
		if _, err := app.UploadSong(context.Background(), req); !errors.Is(err, ErrInvalidUpload) {
			t.Errorf("req %+v: err = %v, want ErrInvalidUpload", req, err)
		}
	}
}

func TestUploadSongCleansUpBlobOnRowFailure(t *testing.T) {
	app, repo, blobs := newTestApp()
	repo.err = errors.New("db down")

	_, err := app.UploadSong(context.Background(), UploadSongRequest{
		Title:    "t",
		Artist:   "a",
		FileName: "x.mp3",
		File:     strings.NewReader("audio"),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(blobs.blobs) != 0 {
		t.Error("orphaned blob left after row failure")
	}
}

func TestDeleteSongRemovesBlobs(t *testing.T) {
	app, _, blobs := newTestApp()
	ctx := context.Background()

	song, err := app.UploadSong(ctx, UploadSongRequest{
		Title:     "t",
		Artist:    "a",
		FileName:  "x.mp3",
		File:      strings.NewReader("audio"),
		CoverName: "x.png",
		Cover:     strings.NewReader("image"),
	})
	if err != nil {
		t.Fatalf("UploadSong: %v", err)
	}

	if err := app.DeleteSong(ctx, song.ID); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("blobs remaining = %d, want 0", len(blobs.blobs))
	}

	if _, err := app.GetSong(ctx, song.ID); !errors.Is(err, ErrSongNotFound) {
		t.Errorf("GetSong after delete: err = %v, want ErrSongNotFound", err)
	}
}

func TestDeleteSongUnknown(t *testing.T) {
	app, _, _ := newTestApp()
	if err := app.DeleteSong(context.Background(), 99); !errors.Is(err, ErrSongNotFound) {
		t.Fatalf("err = %v, want ErrSongNotFound", err)
	}
}

func TestStreamSong(t *testing.T) {
	app, _, _ := newTestApp()
	ctx := context.Background()

	uploaded, err := app.UploadSong(ctx, UploadSongRequest{
		Title:    "t",
		Artist:   "a",
		FileName: "x.mp3",
		File:     strings.NewReader("audio-bytes"),
	})
	if err != nil {
		t.Fatalf("UploadSong: %v", err)
	}

	song, rc, err := app.StreamSong(ctx, uploaded.ID)
	if err != nil {
		t.Fatalf("StreamSong: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("stream = %q, want audio-bytes", data)
	}
	if song.ID != uploaded.ID {
		t.Errorf("song id = %d, want %d", song.ID, uploaded.ID)
	}
}
