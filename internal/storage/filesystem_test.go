package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemPutGet(t *testing.T) {
	fs, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	payload := []byte("png bytes")
	key, err := fs.Put(context.Background(), payload, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))

	data, contentType, err := fs.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
	assert.Equal(t, "image/png", contentType)
}

func TestFilesystemGet_Missing(t *testing.T) {
	fs, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	_, _, err = fs.Get(context.Background(), "nope.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilesystemGet_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFilesystem(dir)
	require.NoError(t, err)

	secret := filepath.Join(dir, "..", "secret.jpg")
	require.NoError(t, os.WriteFile(secret, []byte("outside"), 0o644))

	_, _, err = fs.Get(context.Background(), "../secret.jpg")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutKeysAreUnique(t *testing.T) {
	fs, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	a, err := fs.Put(context.Background(), []byte("a"), "image/jpeg")
	require.NoError(t, err)
	b, err := fs.Put(context.Background(), []byte("b"), "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeFor("abc.PNG"))
	assert.Equal(t, "image/webp", ContentTypeFor("abc.webp"))
	assert.Equal(t, "image/avif", ContentTypeFor("abc.avif"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("abc.jpg"))
	assert.Equal(t, "image/jpeg", ContentTypeFor("no-extension"))
}
