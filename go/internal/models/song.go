package models

import "time"

// Song is a catalog entry. FilePath and CoverImage are blob-store keys, not
// public URLs; the songs service resolves them through the configured store.
type Song struct {
	ID          int64
	Title       string
	Artist      string
	Description string
	FilePath    string
	CoverImage  *string
	Duration    *int
	FileSize    int64
	CreatedAt   time.Time
}
