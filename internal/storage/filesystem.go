package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Filesystem stores objects as flat files under a base directory.
type Filesystem struct {
	dir string
}

func NewFilesystem(dir string) (*Filesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Filesystem{dir: dir}, nil
}

func (f *Filesystem) Put(_ context.Context, data []byte, contentType string) (string, error) {
	key := uuid.New().String() + extensionFor(contentType)
	if err := os.WriteFile(filepath.Join(f.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}
	return key, nil
}

func (f *Filesystem) Get(_ context.Context, key string) ([]byte, string, error) {
	// Keys are flat; strip any path components a caller might smuggle in.
	key = filepath.Base(key)
	data, err := os.ReadFile(filepath.Join(f.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return data, ContentTypeFor(key), nil
}
