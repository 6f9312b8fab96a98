package board

import (
	"context"
	"time"
)

// ObjectStorage stores card attachment objects. Implemented by the S3 and
// stub backends in internal/infrastructure/storage.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// DownloadURL returns a short-lived presigned URL for one object.
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
	// ObjectURL returns the stable URL recorded on the attachment.
	ObjectURL(key string) string
}
