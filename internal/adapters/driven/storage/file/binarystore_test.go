package file

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/paperless-cli/internal/core/domain"
)

func newTestStore(t *testing.T) (*BinaryStore, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store, err := NewBinaryStoreFs(fs, "/data/binary")
	require.NoError(t, err)
	return store, fs
}

func TestNewBinaryStoreFs_CreatesDirectory(t *testing.T) {
	_, fs := newTestStore(t)

	exists, err := afero.DirExists(fs, "/data/binary")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBinaryStore_PrepareAndGet(t *testing.T) {
	store, fs := newTestStore(t)
	ctx := context.Background()
	data := []byte("%PDF-1.7 test")

	bin, err := store.Prepare(ctx, data, "document_7.pdf")
	require.NoError(t, err)

	assert.NotEmpty(t, bin.ID)
	assert.Equal(t, "document_7.pdf", bin.FileName)
	assert.Equal(t, "application/pdf", bin.MimeType)
	assert.Equal(t, int64(len(data)), bin.FileSize)
	assert.Nil(t, bin.Data)

	stored, err := afero.ReadFile(fs, filepath.Join("/data/binary", bin.ID))
	require.NoError(t, err)
	assert.Equal(t, data, stored)

	got, err := store.Get(ctx, bin.ID)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestBinaryStore_PrepareSniffsUnknownExtension(t *testing.T) {
	store, _ := newTestStore(t)

	bin, err := store.Prepare(context.Background(), []byte("%PDF-1.4"), "scan")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", bin.MimeType)
}

func TestBinaryStore_PrepareUniqueIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a, err := store.Prepare(ctx, []byte("a"), "a.txt")
	require.NoError(t, err)
	b, err := store.Prepare(ctx, []byte("b"), "b.txt")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestBinaryStore_GetNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		id   string
	}{
		{"unknown uuid", "3f2504e0-4f89-11d3-9a0c-0305e82c3301"},
		{"empty id", ""},
		{"path traversal", "../config.toml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Get(ctx, tt.id)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestBinaryStore_Remove(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	bin, err := store.Prepare(ctx, []byte("x"), "x.txt")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, bin.ID))
	_, err = store.Get(ctx, bin.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, store.Remove(ctx, bin.ID))
	assert.NoError(t, store.Remove(ctx, "not-an-id"))
}

func TestBinaryStore_PrepareWriteError(t *testing.T) {
	store, fs := newTestStore(t)
	store.fs = afero.NewReadOnlyFs(fs)

	_, err := store.Prepare(context.Background(), []byte("x"), "x.txt")

	assert.Error(t, err)
}
