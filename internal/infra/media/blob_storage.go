// Package media stores uploaded image files through the gocloud.dev blob API,
// so the same code serves local disk in development and S3/GCS in production.
package media

import (
	"context"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Register the bucket URL schemes we support.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"

	"vidtube/config"
	"vidtube/internal/domain/service"
)

// blobStorage is a concrete implementation of the MediaStorage interface
// backed by a gocloud.dev bucket.
type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Context context.Context
	Config  *config.Config
}

// NewBlobStorage opens the configured bucket and returns a MediaStorage.
// The bucket is closed on application shutdown.
func NewBlobStorage(params Params) (service.MediaStorage, error) {
	cfg := params.Config
	if cfg.Media == nil || cfg.Media.BucketURL == "" {
		return nil, errors.New("media bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(params.Context, cfg.Media.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open media bucket")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return bucket.Close()
		},
	})

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.Media.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the content under a random key derived from the original
// filename and returns the public URL of the stored object.
func (s *blobStorage) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	key := objectKey(filename)

	opts := &blob.WriterOptions{}
	if contentType := mime.TypeByExtension(path.Ext(key)); contentType != "" {
		opts.ContentType = contentType
	}

	writer, err := s.bucket.NewWriter(ctx, key, opts)
	if err != nil {
		return "", errors.Wrap(err, "failed to create bucket writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		// Abort the write; Close still has to run to release the writer.
		_ = writer.Close()

		return "", errors.Wrap(err, "failed to write media object")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to commit media object")
	}

	return s.publicURL(key), nil
}

// objectKey builds a collision-free key, keeping the original extension so
// content types survive the round trip.
func objectKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))

	return uuid.NewString() + ext
}

func (s *blobStorage) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return key
	}

	return s.publicBaseURL + "/" + url.PathEscape(key)
}
