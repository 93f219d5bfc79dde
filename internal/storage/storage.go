package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crane-safety-service/internal/config"
)

// ErrNotFound is returned when a key resolves to no stored object.
var ErrNotFound = errors.New("object not found")

// Store keeps opaque image blobs. The rest of the service only ever holds the
// returned key, never the content.
type Store interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, string, error)
}

// New selects the backend from config.
func New(cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "filesystem":
		return NewFilesystem(cfg.Dir)
	case "minio":
		return NewMinio(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/avif":
		return ".avif"
	default:
		return ".jpg"
	}
}

// ContentTypeFor maps a stored key back to its content type by extension.
func ContentTypeFor(key string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(key), ".png"):
		return "image/png"
	case strings.HasSuffix(strings.ToLower(key), ".webp"):
		return "image/webp"
	case strings.HasSuffix(strings.ToLower(key), ".avif"):
		return "image/avif"
	default:
		return "image/jpeg"
	}
}
