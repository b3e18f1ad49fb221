package infra

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sojourn/internal/config"
)

func TestNewObjectStorageFallsBackToLocalDir(t *testing.T) {
	cfg := &config.Config{
		S3Bucket:        "",
		StorageLocalDir: filepath.Join(t.TempDir(), "blobs"),
		StorageBaseURL:  "https://storage.test",
	}

	store, err := NewObjectStorage(cfg)
	require.NoError(t, err)
	_, ok := store.(*localStorage)
	assert.True(t, ok)
}

func TestLocalStoragePutGetDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, "https://storage.test/")
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Put(ctx, "media/u1/photo.png", "image/png", []byte("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/media/u1/photo.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "media", "u1", "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)

	key := store.KeyFromURL(url)
	assert.Equal(t, "media/u1/photo.png", key)
	assert.Empty(t, store.KeyFromURL("https://elsewhere.test/media/u1/photo.png"))

	require.NoError(t, store.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(dir, "media", "u1", "photo.png"))
	assert.True(t, os.IsNotExist(err))

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "https://storage.test")
	require.NoError(t, err)

	_, err = store.Put(context.Background(), "../outside.txt", "text/plain", []byte("x"))
	assert.Error(t, err)
}
