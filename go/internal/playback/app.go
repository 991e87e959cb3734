package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/airwavehq/airwave/go/internal/models"
)

// PlaybackRepository defines what the app layer needs from the repository
type PlaybackRepository interface {
	GetOrCreateSession(ctx context.Context, defaults *models.PlaybackSession) (*models.PlaybackSession, bool, error)
	GetSession(ctx context.Context, sessionID string) (*models.PlaybackSession, error)
	UpdateSession(ctx context.Context, sessionID string, mutate func(*models.PlaybackSession) error) (*models.PlaybackSession, error)
	ListSessionsWithDevices(ctx context.Context) ([]string, error)
}

// StatePublisher fans the canonical state out on the session's channel.
// Publishing is best-effort: the store is the source of truth and a failed
// broadcast degrades to slow sync, so publish errors never fail an update.
type StatePublisher interface {
	PublishState(ctx context.Context, broadcast StateBroadcast) error
}

// OwnerResolver supplies the account that owns newly created sessions.
type OwnerResolver interface {
	DefaultOwner(ctx context.Context) (uuid.UUID, error)
}

// App handles playback session business logic: get-or-create, the
// field-level state merge, device registration and broadcast ordering.
type App struct {
	repo      PlaybackRepository
	publisher StatePublisher
	owners    OwnerResolver
	clock     clockwork.Clock
}

// NewApp creates a new playback App.
func NewApp(repo PlaybackRepository, publisher StatePublisher, owners OwnerResolver, clock clockwork.Clock) *App {
	return &App{
		repo:      repo,
		publisher: publisher,
		owners:    owners,
		clock:     clock,
	}
}

// GetOrCreateSession returns the session for the given id, creating it with
// default state (paused, position 0, volume 0.7) when the id is unknown. An
// empty id asks for a fresh session under a generated uuid.
func (a *App) GetOrCreateSession(ctx context.Context, sessionID string) (*models.PlaybackSession, error) {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	owner, err := a.owners.DefaultOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session owner: %w", err)
	}

	session, created, err := a.repo.GetOrCreateSession(ctx, &models.PlaybackSession{
		SessionID:        sessionID,
		OwnerID:          owner,
		PositionSeconds:  0,
		IsPlaying:        false,
		Volume:           DefaultVolume,
		ConnectedDevices: map[string]models.DeviceInfo{},
	})
	if err != nil {
		return nil, err
	}

	if created {
		log.Info().
			Str("session_id", session.SessionID).
			Str("owner_id", session.OwnerID.String()).
			Msg("created playback session")
	}
	return session, nil
}

// ApplyUpdate merges a partial update from one device into the stored
// session. Present fields overwrite, absent fields are untouched, and the
// calling device always becomes the active one. The updated record is
// persisted before it is broadcast, so a device that polls right after the
// broadcast reads state at least as new as what was announced.
func (a *App) ApplyUpdate(ctx context.Context, req UpdateStateRequest) (*models.PlaybackSession, error) {
	if err := validateUpdateStateRequest(req); err != nil {
		return nil, err
	}

	session, err := a.repo.UpdateSession(ctx, req.SessionID, func(s *models.PlaybackSession) error {
		if req.CurrentSongID != nil {
			s.CurrentSongID = req.CurrentSongID
		}
		if req.CurrentTime != nil {
			s.PositionSeconds = *req.CurrentTime
		}
		if req.IsPlaying != nil {
			s.IsPlaying = *req.IsPlaying
		}
		if req.Volume != nil {
			s.Volume = *req.Volume
		}
		s.ActiveDeviceID = req.DeviceID
		now := a.clock.Now().UTC()
		s.LastSyncAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	a.publishState(ctx, session, req.DeviceID)
	return session, nil
}

// RegisterDevice upserts the device entry on the session and returns the
// full device mapping. Re-registering an existing device id overwrites its
// entry and refreshes last_seen.
func (a *App) RegisterDevice(ctx context.Context, req RegisterDeviceRequest) (map[string]models.DeviceInfo, error) {
	if err := validateRegisterDeviceRequest(req); err != nil {
		return nil, err
	}

	session, err := a.repo.UpdateSession(ctx, req.SessionID, func(s *models.PlaybackSession) error {
		if s.ConnectedDevices == nil {
			s.ConnectedDevices = make(map[string]models.DeviceInfo)
		}
		s.ConnectedDevices[req.DeviceID] = models.DeviceInfo{
			Name:     req.DeviceName,
			Type:     models.DeviceType(req.DeviceType),
			LastSeen: a.clock.Now().UTC(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("session_id", req.SessionID).
		Str("device_id", req.DeviceID).
		Int("devices", len(session.ConnectedDevices)).
		Msg("registered playback device")
	return session.ConnectedDevices, nil
}

// ListDevices returns the device mapping and the active device id for a
// session.
func (a *App) ListDevices(ctx context.Context, sessionID string) (map[string]models.DeviceInfo, string, error) {
	if sessionID == "" {
		return nil, "", newValidationError("session_id", "is required")
	}

	session, err := a.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	return session.ConnectedDevices, session.ActiveDeviceID, nil
}

// PruneStaleDevices drops devices whose last_seen is older than ttl from
// every session that still lists devices. Returns the number removed.
func (a *App) PruneStaleDevices(ctx context.Context, ttl time.Duration) (int, error) {
	ids, err := a.repo.ListSessionsWithDevices(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := a.clock.Now().Add(-ttl)
	removed := 0
	for _, sessionID := range ids {
		_, err := a.repo.UpdateSession(ctx, sessionID, func(s *models.PlaybackSession) error {
			for deviceID, info := range s.ConnectedDevices {
				if info.LastSeen.Before(cutoff) {
					delete(s.ConnectedDevices, deviceID)
					removed++
				}
			}
			return nil
		})
		if err != nil {
			return removed, fmt.Errorf("failed to prune devices for session %s: %w", sessionID, err)
		}
	}
	return removed, nil
}

// publishState emits the canonical state on the session's channel tagged
// with the originating device. Failures are logged and swallowed: the update
// is already persisted and the next get-session call recovers truth.
func (a *App) publishState(ctx context.Context, session *models.PlaybackSession, updatedBy string) {
	state := StateFromSession(session)
	state.UpdatedBy = updatedBy

	broadcast := StateBroadcast{
		Event:         EventPlaybackUpdated,
		SessionID:     session.SessionID,
		Timestamp:     a.clock.Now().UTC(),
		PlaybackState: state,
	}

	if err := a.publisher.PublishState(ctx, broadcast); err != nil {
		log.Warn().
			Err(err).
			Str("session_id", session.SessionID).
			Str("updated_by", updatedBy).
			Msg("failed to publish playback state, devices will resync on next poll")
	}
}

func validateUpdateStateRequest(req UpdateStateRequest) error {
	if req.SessionID == "" {
		return newValidationError("session_id", "is required")
	}
	if req.DeviceID == "" {
		return newValidationError("device_id", "is required")
	}
	if req.Volume != nil && (*req.Volume < 0.0 || *req.Volume > 1.0) {
		return newValidationError("volume", "must be between 0.0 and 1.0")
	}
	if req.CurrentTime != nil && *req.CurrentTime < 0 {
		return newValidationError("current_time", "must not be negative")
	}
	return nil
}

func validateRegisterDeviceRequest(req RegisterDeviceRequest) error {
	if req.SessionID == "" {
		return newValidationError("session_id", "is required")
	}
	if req.DeviceID == "" {
		return newValidationError("device_id", "is required")
	}
	if req.DeviceName == "" {
		return newValidationError("device_name", "is required")
	}
	if req.DeviceType == "" {
		return newValidationError("device_type", "is required")
	}
	return nil
}
