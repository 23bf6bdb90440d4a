package service

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/wanderlog/backend/internal/model"
)

// MediaStore is the media-host surface the services need.
// *client.MediaClient satisfies it; tests substitute fakes.
type MediaStore interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
}

// Upload carries one multipart file from the handler into a service.
type Upload struct {
	Reader      io.Reader
	Size        int64
	Filename    string
	ContentType string
}

// mediaKey builds an object key like "memories/<uuid>.jpg", keeping the
// original extension so the host serves a sensible content type.
func mediaKey(prefix, filename string) string {
	return prefix + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
}

func mediaTypeFor(contentType string) string {
	if strings.HasPrefix(contentType, "video/") {
		return model.MediaTypeVideo
	}
	return model.MediaTypeImage
}
