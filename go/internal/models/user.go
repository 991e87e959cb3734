package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system. Authentication and token
// issuance live outside this service; users exist here so sessions and
// playlists have an owner to hang off.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
