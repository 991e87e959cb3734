package playback

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/models"
)

// PlaybackApp defines what the service layer needs from the playback app
type PlaybackApp interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (*models.PlaybackSession, error)
	ApplyUpdate(ctx context.Context, req UpdateStateRequest) (*models.PlaybackSession, error)
	RegisterDevice(ctx context.Context, req RegisterDeviceRequest) (map[string]models.DeviceInfo, error)
	ListDevices(ctx context.Context, sessionID string) (map[string]models.DeviceInfo, string, error)
}

// Service exposes the playback sync endpoints over HTTP.
type Service struct {
	app PlaybackApp
}

// NewService creates a new playback HTTP service.
func NewService(app PlaybackApp) *Service {
	return &Service{app: app}
}

type sessionResponse struct {
	SessionID     string        `json:"session_id"`
	PlaybackState PlaybackState `json:"playback_state"`
}

type updateResponse struct {
	Success       bool          `json:"success"`
	PlaybackState PlaybackState `json:"playback_state"`
}

type registerResponse struct {
	Success bool                         `json:"success"`
	Devices map[string]models.DeviceInfo `json:"devices"`
}

type devicesResponse struct {
	Devices        map[string]models.DeviceInfo `json:"devices"`
	ActiveDeviceID string                       `json:"active_device_id"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// HandleGetSession handles GET /playback/session. An unknown or omitted
// session_id creates a fresh session.
func (s *Service) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session, err := s.app.GetOrCreateSession(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID:     session.SessionID,
		PlaybackState: StateFromSession(session),
	})
}

// HandleUpdateState handles POST /playback/update.
func (s *Service) HandleUpdateState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req UpdateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := s.app.ApplyUpdate(r.Context(), req)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updateResponse{
		Success:       true,
		PlaybackState: StateFromSession(session),
	})
}

// HandleRegisterDevice handles POST /playback/device/register.
func (s *Service) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid request body"})
		return
	}

	devices, err := s.app.RegisterDevice(r.Context(), req)
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{Success: true, Devices: devices})
}

// HandleGetDevices handles GET /playback/devices.
func (s *Service) HandleGetDevices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	devices, activeDeviceID, err := s.app.ListDevices(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		s.writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, devicesResponse{
		Devices:        devices,
		ActiveDeviceID: activeDeviceID,
	})
}

// RegisterRoutes registers the playback endpoints with an HTTP mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/playback/session", s.HandleGetSession)
	mux.HandleFunc("/playback/update", s.HandleUpdateState)
	mux.HandleFunc("/playback/device/register", s.HandleRegisterDevice)
	mux.HandleFunc("/playback/devices", s.HandleGetDevices)
}

// writeAppError maps app errors onto the HTTP taxonomy: unknown session is
// 404, rejected input is 422 with field detail, anything else is a generic
// 500.
func (s *Service) writeAppError(w http.ResponseWriter, err error) {
	var vErr *ValidationError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Session not found"})
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: vErr.Field + " " + vErr.Reason,
			Field: vErr.Field,
		})
	default:
		log.Error().Err(err).Msg("playback request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
