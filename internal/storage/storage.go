package storage

import (
	"context"
	"io"
)

// Service stores uploaded cover images in remote object storage and
// returns a public URL for each stored object.
type Service interface {
	UploadCover(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
	DeleteCover(ctx context.Context, coverURL string) error
}
