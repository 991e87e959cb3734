package playlists

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/airwavehq/airwave/go/internal/models"
)

type fakeRepo struct {
	playlists map[uuid.UUID]*models.Playlist
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{playlists: make(map[uuid.UUID]*models.Playlist)}
}

func (r *fakeRepo) CreatePlaylist(ctx context.Context, ownerID uuid.UUID, name string) (*models.Playlist, error) {
	p := &models.Playlist{ID: uuid.New(), OwnerID: ownerID, Name: name}
	r.playlists[p.ID] = p
	return p, nil
}

func (r *fakeRepo) GetPlaylist(ctx context.Context, id uuid.UUID) (*models.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, ErrPlaylistNotFound
	}
	return p, nil
}

func (r *fakeRepo) ListPlaylistsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Playlist, error) {
	var out []*models.Playlist
	for _, p := range r.playlists {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) RenamePlaylist(ctx context.Context, id uuid.UUID, name string) (*models.Playlist, error) {
	p, ok := r.playlists[id]
	if !ok {
		return nil, ErrPlaylistNotFound
	}
	p.Name = name
	return p, nil
}

func (r *fakeRepo) DeletePlaylist(ctx context.Context, id uuid.UUID) error {
	delete(r.playlists, id)
	return nil
}

func (r *fakeRepo) AddSong(ctx context.Context, playlistID uuid.UUID, songID int64) error {
	p, ok := r.playlists[playlistID]
	if !ok {
		return ErrPlaylistNotFound
	}
	for _, id := range p.SongIDs {
		if id == songID {
			return nil
		}
	}
	p.SongIDs = append(p.SongIDs, songID)
	return nil
}

func (r *fakeRepo) RemoveSong(ctx context.Context, playlistID uuid.UUID, songID int64) error {
	p, ok := r.playlists[playlistID]
	if !ok {
		return ErrPlaylistNotFound
	}
	for i, id := range p.SongIDs {
		if id == songID {
			p.SongIDs = append(p.SongIDs[:i], p.SongIDs[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeOwners struct {
	owner uuid.UUID
}

func (o *fakeOwners) DefaultOwner(ctx context.Context) (uuid.UUID, error) {
	return o.owner, nil
}

func newTestApp() (*App, *fakeRepo, uuid.UUID) {
	repo := newFakeRepo()
	owner := uuid.New()
	return NewApp(repo, &fakeOwners{owner: owner}), repo, owner
}

func TestCreatePlaylist(t *testing.T) {
	app, _, owner := newTestApp()

	playlist, err := app.CreatePlaylist(context.Background(), "Road Trip")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	if playlist.Name != "Road Trip" {
		t.Errorf("name = %q, want Road Trip", playlist.Name)
	}
	if playlist.OwnerID != owner {
		t.Error("playlist not owned by default account")
	}
}

func TestCreatePlaylistRequiresName(t *testing.T) {
	app, _, _ := newTestApp()

	_, err := app.CreatePlaylist(context.Background(), "")
	if !errors.Is(err, ErrInvalidPlaylist) {
		t.Fatalf("err = %v, want ErrInvalidPlaylist", err)
	}
}

func TestAddAndRemoveSong(t *testing.T) {
	app, _, _ := newTestApp()
	ctx := context.Background()

	playlist, err := app.CreatePlaylist(ctx, "Mix")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	if err := app.AddSong(ctx, playlist.ID, 7); err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	// Adding the same song twice is a no-op.
	if err := app.AddSong(ctx, playlist.ID, 7); err != nil {
		t.Fatalf("AddSong repeat: %v", err)
	}
	if err := app.AddSong(ctx, playlist.ID, 9); err != nil {
		t.Fatalf("AddSong: %v", err)
	}

	got, err := app.GetPlaylist(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("GetPlaylist: %v", err)
	}
	if len(got.SongIDs) != 2 {
		t.Fatalf("songs = %v, want [7 9]", got.SongIDs)
	}

	if err := app.RemoveSong(ctx, playlist.ID, 7); err != nil {
		t.Fatalf("RemoveSong: %v", err)
	}
	got, _ = app.GetPlaylist(ctx, playlist.ID)
	if len(got.SongIDs) != 1 || got.SongIDs[0] != 9 {
		t.Errorf("songs = %v, want [9]", got.SongIDs)
	}
}

func TestAddSongUnknownPlaylist(t *testing.T) {
	app, _, _ := newTestApp()

	err := app.AddSong(context.Background(), uuid.New(), 7)
	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Fatalf("err = %v, want ErrPlaylistNotFound", err)
	}
}

func TestRenamePlaylist(t *testing.T) {
	app, _, _ := newTestApp()
	ctx := context.Background()

	playlist, err := app.CreatePlaylist(ctx, "Old Name")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	renamed, err := app.RenamePlaylist(ctx, playlist.ID, "New Name")
	if err != nil {
		t.Fatalf("RenamePlaylist: %v", err)
	}
	if renamed.Name != "New Name" {
		t.Errorf("name = %q, want New Name", renamed.Name)
	}

	if _, err := app.RenamePlaylist(ctx, playlist.ID, ""); !errors.Is(err, ErrInvalidPlaylist) {
		t.Errorf("empty rename: err = %v, want ErrInvalidPlaylist", err)
	}
}

func TestDeletePlaylist(t *testing.T) {
	app, _, _ := newTestApp()
	ctx := context.Background()

	playlist, err := app.CreatePlaylist(ctx, "Gone Soon")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	if err := app.DeletePlaylist(ctx, playlist.ID); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	if _, err := app.GetPlaylist(ctx, playlist.ID); !errors.Is(err, ErrPlaylistNotFound) {
		t.Errorf("get after delete: err = %v, want ErrPlaylistNotFound", err)
	}
	if err := app.DeletePlaylist(ctx, playlist.ID); !errors.Is(err, ErrPlaylistNotFound) {
		t.Errorf("double delete: err = %v, want ErrPlaylistNotFound", err)
	}
}

func TestListPlaylistsScopedToOwner(t *testing.T) {
	app, repo, _ := newTestApp()
	ctx := context.Background()

	if _, err := app.CreatePlaylist(ctx, "Mine"); err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	// Another account's playlist must not appear.
	if _, err := repo.CreatePlaylist(ctx, uuid.New(), "Theirs"); err != nil {
		t.Fatalf("CreatePlaylist other owner: %v", err)
	}

	playlists, err := app.ListPlaylists(ctx)
	if err != nil {
		t.Fatalf("ListPlaylists: %v", err)
	}
	if len(playlists) != 1 || playlists[0].Name != "Mine" {
		t.Errorf("playlists = %v, want just Mine", playlists)
	}
}
