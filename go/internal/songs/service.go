package songs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/models"
)

const maxUploadMemory = 32 << 20 // 32MB in memory, rest spills to disk

// SongsApp defines what the service layer needs from the songs app
type SongsApp interface {
	UploadSong(ctx context.Context, req UploadSongRequest) (*models.Song, error)
	GetSong(ctx context.Context, id int64) (*models.Song, error)
	ListSongs(ctx context.Context) ([]*models.Song, error)
	DeleteSong(ctx context.Context, id int64) error
	StreamSong(ctx context.Context, id int64) (*models.Song, io.ReadCloser, error)
	ResolveURL(key string) string
}

// Service exposes the song catalog over HTTP.
type Service struct {
	app SongsApp
}

// NewService creates a new songs HTTP service.
func NewService(app SongsApp) *Service {
	return &Service{app: app}
}

// RegisterRoutes registers the song endpoints with an HTTP mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/songs", s.handleCollection)
	mux.HandleFunc("/api/songs/", s.handleItem)
}

func (s *Service) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleList(w, r)
	case http.MethodPost:
		s.handleUpload(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Service) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/songs/")
	idStr, tail, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "invalid song id", http.StatusBadRequest)
		return
	}

	switch {
	case tail == "" && r.Method == http.MethodGet:
		s.handleGet(w, r, id)
	case tail == "" && r.Method == http.MethodDelete:
		s.handleDelete(w, r, id)
	case tail == "stream" && r.Method == http.MethodGet:
		s.handleStream(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	songs, err := s.app.ListSongs(r.Context())
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	out := make([]SongResponse, 0, len(songs))
	for _, song := range songs {
		out = append(out, s.songToResponse(song))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request, id int64) {
	song, err := s.app.GetSong(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.songToResponse(song))
}

func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid multipart form"})
		return
	}

	req := UploadSongRequest{
		Title:       r.FormValue("title"),
		Artist:      r.FormValue("artist"),
		Description: r.FormValue("description"),
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		req.File = file
		req.FileName = header.Filename
	}
	if cover, header, err := r.FormFile("cover_image"); err == nil {
		defer cover.Close()
		req.Cover = cover
		req.CoverName = header.Filename
	}

	song, err := s.app.UploadSong(r.Context(), req)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.songToResponse(song))
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := s.app.DeleteSong(r.Context(), id); err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Song deleted successfully"})
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request, id int64) {
	song, rc, err := s.app.StreamSong(r.Context(), id)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.FormatInt(song.FileSize, 10))
	if _, err := io.Copy(w, rc); err != nil {
		log.Error().Err(err).Int64("song_id", id).Msg("failed to stream song")
	}
}

func (s *Service) songToResponse(song *models.Song) SongResponse {
	resp := SongResponse{
		ID:          song.ID,
		Title:       song.Title,
		Artist:      song.Artist,
		Description: song.Description,
		FilePath:    s.app.ResolveURL(song.FilePath),
		Duration:    song.Duration,
		FileSize:    song.FileSize,
	}
	if song.CoverImage != nil {
		url := s.app.ResolveURL(*song.CoverImage)
		resp.CoverImage = &url
	}
	return resp
}

func (s *Service) writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSongNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Song not found"})
	case errors.Is(err, ErrInvalidUpload):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		log.Error().Err(err).Msg("songs request failed")
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
