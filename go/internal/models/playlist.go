package models

import (
	"time"

	"github.com/google/uuid"
)

// Playlist is an ordered collection of songs belonging to one account.
type Playlist struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	SongIDs   []int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
