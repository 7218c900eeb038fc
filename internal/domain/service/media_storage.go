package service

import (
	"context"
	"io"
)

// MediaStorage uploads user-supplied images to a blob store and returns the
// public URL of the stored object. The core only needs the URL string; the
// provider behind it is configuration.
type MediaStorage interface {
	// Upload stores the content under a generated key derived from filename
	// and returns the public URL. A failed upload must leave nothing behind
	// that the caller has to clean up.
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}
