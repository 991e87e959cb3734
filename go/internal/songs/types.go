package songs

import "io"

// UploadSongRequest carries the metadata and file handles for a new song.
type UploadSongRequest struct {
	Title       string
	Artist      string
	Description string

	File     io.Reader
	FileName string

	Cover     io.Reader
	CoverName string
}

// SongResponse is the wire shape for a catalog entry. FilePath and
// CoverImage are resolved public URLs.
type SongResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Artist      string  `json:"artist"`
	Description string  `json:"description,omitempty"`
	FilePath    string  `json:"file_path"`
	CoverImage  *string `json:"cover_image"`
	Duration    *int    `json:"duration"`
	FileSize    int64   `json:"file_size"`
}
