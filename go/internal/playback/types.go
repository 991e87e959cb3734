package playback

import (
	"time"

	"github.com/airwavehq/airwave/go/internal/models"
)

// Defaults applied when a session is created through get-or-create.
const (
	DefaultVolume = 0.7
)

// UpdateStateRequest is a partial playback-state update from one device.
// Nil fields are left untouched on the stored session; present fields
// overwrite, last writer wins per field.
type UpdateStateRequest struct {
	SessionID     string   `json:"session_id"`
	DeviceID      string   `json:"device_id"`
	CurrentSongID *int64   `json:"current_song_id,omitempty"`
	CurrentTime   *float64 `json:"current_time,omitempty"`
	IsPlaying     *bool    `json:"is_playing,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
}

// RegisterDeviceRequest attaches (or refreshes) a device on a session.
type RegisterDeviceRequest struct {
	SessionID  string `json:"session_id"`
	DeviceID   string `json:"device_id"`
	DeviceName string `json:"device_name"`
	DeviceType string `json:"device_type"`
}

// PlaybackState is the wire shape of a session's canonical state, shared by
// HTTP responses and broadcast payloads. UpdatedBy is only set on broadcasts
// so receiving devices can discard their own echo.
type PlaybackState struct {
	CurrentSongID  *int64  `json:"current_song_id"`
	CurrentTime    float64 `json:"current_time"`
	IsPlaying      bool    `json:"is_playing"`
	Volume         float64 `json:"volume"`
	ActiveDeviceID string  `json:"active_device_id,omitempty"`
	UpdatedBy      string  `json:"updated_by,omitempty"`
}

// StateBroadcast is the envelope published on the session's channel after
// every accepted update.
type StateBroadcast struct {
	Event         string        `json:"event"`
	SessionID     string        `json:"session_id"`
	Timestamp     time.Time     `json:"timestamp"`
	PlaybackState PlaybackState `json:"playbackState"`
}

// EventPlaybackUpdated is the event name carried by every state broadcast.
const EventPlaybackUpdated = "playback.updated"

// StateFromSession projects the stored session onto the wire shape.
func StateFromSession(s *models.PlaybackSession) PlaybackState {
	return PlaybackState{
		CurrentSongID:  s.CurrentSongID,
		CurrentTime:    s.PositionSeconds,
		IsPlaying:      s.IsPlaying,
		Volume:         s.Volume,
		ActiveDeviceID: s.ActiveDeviceID,
	}
}
