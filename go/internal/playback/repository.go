package playback

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/airwavehq/airwave/go/internal/models"
	"github.com/airwavehq/airwave/go/internal/playback/db"
	"github.com/airwavehq/airwave/go/internal/sqlutil"
)

// Repository implements playback session data access on Postgres. The single
// playback_sessions row per session id is the source of truth; read-modify-
// write cycles run inside a transaction with the row locked.
type Repository struct {
	database *sql.DB
	queries  *db.Queries
}

// NewRepository creates a new playback repository.
func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		database: database,
		queries:  db.New(database),
	}
}

// GetOrCreateSession returns the stored session for the id, creating it from
// the given defaults when absent. The INSERT is ON CONFLICT DO NOTHING, so
// concurrent callers with the same id race safely: exactly one row is
// created and everyone reads the same record back. The second return value
// reports whether this call created the row.
func (r *Repository) GetOrCreateSession(ctx context.Context, defaults *models.PlaybackSession) (*models.PlaybackSession, bool, error) {
	devices, err := devicesToRaw(defaults.ConnectedDevices)
	if err != nil {
		return nil, false, err
	}

	rows, err := r.queries.CreatePlaybackSession(ctx, db.CreatePlaybackSessionParams{
		ID:               uuid.New(),
		SessionID:        defaults.SessionID,
		OwnerID:          defaults.OwnerID,
		CurrentSongID:    sqlutil.ToSqlInt64(defaults.CurrentSongID),
		PositionSeconds:  defaults.PositionSeconds,
		IsPlaying:        defaults.IsPlaying,
		Volume:           defaults.Volume,
		ConnectedDevices: devices,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create playback session: %w", err)
	}

	dbSession, err := r.queries.GetPlaybackSession(ctx, defaults.SessionID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get playback session: %w", err)
	}

	session, err := dbSessionToModel(dbSession)
	if err != nil {
		return nil, false, err
	}
	return session, rows == 1, nil
}

// GetSession retrieves a session by id.
func (r *Repository) GetSession(ctx context.Context, sessionID string) (*models.PlaybackSession, error) {
	dbSession, err := r.queries.GetPlaybackSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get playback session: %w", err)
	}
	return dbSessionToModel(dbSession)
}

// UpdateSession loads the session with the row locked, applies mutate to it
// and persists the full record before the transaction commits. mutate
// returning an error rolls everything back.
func (r *Repository) UpdateSession(ctx context.Context, sessionID string, mutate func(*models.PlaybackSession) error) (*models.PlaybackSession, error) {
	var updated *models.PlaybackSession

	err := sqlutil.Run(ctx, r.database,
		func(tx *sql.Tx) *db.Queries { return r.queries.WithTx(tx) },
		func(q *db.Queries) error {
			dbSession, err := q.GetPlaybackSessionForUpdate(ctx, sessionID)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrSessionNotFound
				}
				return fmt.Errorf("failed to lock playback session: %w", err)
			}

			session, err := dbSessionToModel(dbSession)
			if err != nil {
				return err
			}
			if err := mutate(session); err != nil {
				return err
			}

			devices, err := devicesToRaw(session.ConnectedDevices)
			if err != nil {
				return err
			}

			saved, err := q.UpdatePlaybackSession(ctx, db.UpdatePlaybackSessionParams{
				SessionID:        sessionID,
				CurrentSongID:    sqlutil.ToSqlInt64(session.CurrentSongID),
				PositionSeconds:  session.PositionSeconds,
				IsPlaying:        session.IsPlaying,
				Volume:           session.Volume,
				ActiveDeviceID:   toNullString(session.ActiveDeviceID),
				ConnectedDevices: devices,
				LastSyncAt:       sqlutil.ToSqlTime(session.LastSyncAt),
			})
			if err != nil {
				return fmt.Errorf("failed to update playback session: %w", err)
			}

			updated, err = dbSessionToModel(saved)
			return err
		})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ListSessionsWithDevices returns the ids of sessions that still carry at
// least one registered device.
func (r *Repository) ListSessionsWithDevices(ctx context.Context) ([]string, error) {
	ids, err := r.queries.ListSessionsWithDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions with devices: %w", err)
	}
	return ids, nil
}

func dbSessionToModel(s db.PlaybackSession) (*models.PlaybackSession, error) {
	devices := make(map[string]models.DeviceInfo)
	if s.ConnectedDevices.Valid && len(s.ConnectedDevices.RawMessage) > 0 {
		if err := json.Unmarshal(s.ConnectedDevices.RawMessage, &devices); err != nil {
			return nil, fmt.Errorf("failed to decode connected devices: %w", err)
		}
	}

	return &models.PlaybackSession{
		SessionID:        s.SessionID,
		OwnerID:          s.OwnerID,
		CurrentSongID:    sqlutil.FromSqlInt64(s.CurrentSongID),
		PositionSeconds:  s.PositionSeconds,
		IsPlaying:        s.IsPlaying,
		Volume:           s.Volume,
		ActiveDeviceID:   sqlutil.FromSqlString(s.ActiveDeviceID, ""),
		ConnectedDevices: devices,
		LastSyncAt:       sqlutil.FromSqlTime(s.LastSyncAt),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}, nil
}

// devicesToRaw encodes the device map for the jsonb column. The column is
// NOT NULL, so an empty map still becomes '{}'.
func devicesToRaw(devices map[string]models.DeviceInfo) (pqtype.NullRawMessage, error) {
	if len(devices) == 0 {
		return pqtype.NullRawMessage{RawMessage: json.RawMessage(`{}`), Valid: true}, nil
	}
	raw, err := json.Marshal(devices)
	if err != nil {
		return pqtype.NullRawMessage{}, fmt.Errorf("failed to encode connected devices: %w", err)
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
