package storage

import (
	"context"
	"io"
)

// BlobStore abstracts where audio and cover files live. The reference
// deployment keeps blobs on local disk; the interface keeps a bucket-backed
// implementation possible without touching the songs service.
type BlobStore interface {
	// Put stores the blob under key and returns the number of bytes written.
	Put(ctx context.Context, key string, r io.Reader) (int64, error)
	// Open returns a reader over the blob.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the blob. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL the blob is served under.
	URL(key string) string
}
