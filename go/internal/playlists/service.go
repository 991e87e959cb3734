package playlists

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/models"
)

// PlaylistsApp defines what the service layer needs from the playlists app
type PlaylistsApp interface {
	CreatePlaylist(ctx context.Context, name string) (*models.Playlist, error)
	GetPlaylist(ctx context.Context, id uuid.UUID) (*models.Playlist, error)
	ListPlaylists(ctx context.Context) ([]*models.Playlist, error)
	RenamePlaylist(ctx context.Context, id uuid.UUID, name string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id uuid.UUID) error
	AddSong(ctx context.Context, playlistID uuid.UUID, songID int64) error
	RemoveSong(ctx context.Context, playlistID uuid.UUID, songID int64) error
}

// Service exposes playlists over HTTP.
type Service struct {
	app PlaylistsApp
}

// NewService creates a new playlists HTTP service.
func NewService(app PlaylistsApp) *Service {
	return &Service{app: app}
}

type playlistRequest struct {
	Name string `json:"name"`
}

type playlistSongRequest struct {
	SongID int64 `json:"song_id"`
}

type playlistResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	SongIDs []int64 `json:"song_ids"`
}

// RegisterRoutes registers the playlist endpoints with an HTTP mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/playlists", s.handleCollection)
	mux.HandleFunc("/api/playlists/", s.handleItem)
}

func (s *Service) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleList(w, r)
	case http.MethodPost:
		s.handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Service) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/playlists/")
	idStr, tail, _ := strings.Cut(rest, "/")

	id, err := uuid.Parse(idStr)
	if err != nil {
		http.Error(w, "invalid playlist id", http.StatusBadRequest)
		return
	}

	switch {
	case tail == "" && r.Method == http.MethodGet:
		s.handleGet(w, r, id)
	case tail == "" && r.Method == http.MethodPatch:
		s.handleRename(w, r, id)
	case tail == "" && r.Method == http.MethodDelete:
		s.handleDelete(w, r, id)
	case tail == "songs" && r.Method == http.MethodPost:
		s.handleAddSong(w, r, id)
	case strings.HasPrefix(tail, "songs/") && r.Method == http.MethodDelete:
		s.handleRemoveSong(w, r, id, strings.TrimPrefix(tail, "songs/"))
	default:
		http.NotFound(w, r)
	}
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	playlists, err := s.app.ListPlaylists(r.Context())
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	out := make([]playlistResponse, 0, len(playlists))
	for _, p := range playlists {
		out = append(out, playlistToResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid request body"})
		return
	}

	playlist, err := s.app.CreatePlaylist(r.Context(), req.Name)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, playlistToResponse(playlist))
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	playlist, err := s.app.GetPlaylist(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistToResponse(playlist))
}

func (s *Service) handleRename(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req playlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid request body"})
		return
	}

	playlist, err := s.app.RenamePlaylist(r.Context(), id, req.Name)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, playlistToResponse(playlist))
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := s.app.DeletePlaylist(r.Context(), id); err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Playlist deleted successfully"})
}

func (s *Service) handleAddSong(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var req playlistSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.app.AddSong(r.Context(), id, req.SongID); err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Service) handleRemoveSong(w http.ResponseWriter, r *http.Request, id uuid.UUID, songIDStr string) {
	songID, err := strconv.ParseInt(songIDStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid song id", http.StatusBadRequest)
		return
	}

	if err := s.app.RemoveSong(r.Context(), id, songID); err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func playlistToResponse(p *models.Playlist) playlistResponse {
	songIDs := p.SongIDs
	if songIDs == nil {
		songIDs = []int64{}
	}
	return playlistResponse{
		ID:      p.ID.String(),
		Name:    p.Name,
		SongIDs: songIDs,
	}
}

func (s *Service) writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPlaylistNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Playlist not found"})
	case errors.Is(err, ErrInvalidPlaylist):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("playlists request failed")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
