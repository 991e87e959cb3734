package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceType categorizes a connected playback device.
type DeviceType string

const (
	DeviceTypeWeb     DeviceType = "web"
	DeviceTypeMobile  DeviceType = "mobile"
	DeviceTypeDesktop DeviceType = "desktop"
)

// DeviceInfo describes one device attached to a playback session, keyed by
// the client-generated device id in PlaybackSession.ConnectedDevices.
type DeviceInfo struct {
	Name     string     `json:"name"`
	Type     DeviceType `json:"type"`
	LastSeen time.Time  `json:"last_seen"`
}

// PlaybackSession is the authoritative playback state shared by every device
// attached to the same session. There is exactly one record per SessionID;
// all mutation goes through the playback app so that persisted state and
// broadcast state never diverge.
type PlaybackSession struct {
	SessionID        string
	OwnerID          uuid.UUID
	CurrentSongID    *int64
	PositionSeconds  float64
	IsPlaying        bool
	Volume           float64
	ActiveDeviceID   string
	ConnectedDevices map[string]DeviceInfo
	LastSyncAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
