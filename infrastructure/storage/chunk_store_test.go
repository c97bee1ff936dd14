package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"filedrop/domain"
	apperrors "filedrop/errors"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestChunkStore_ReadsInIndexOrder(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	store := NewChunkStore(fs, "/chunks", slog.Default())
	ctx := context.Background()

	// Given chunks written out of order
	payloads := map[domain.ChunkIndex]string{1: "B", 0: "A", 2: "C"}
	for _, index := range []domain.ChunkIndex{1, 0, 2} {
		n, err := store.PutChunk(ctx, "S1", index, bytes.NewBufferString(payloads[index]))
		req.NoError(err)
		req.Equal(int64(1), n)
	}

	// When reading them back
	r, err := store.ReadChunksInOrder(ctx, "S1", 3)
	req.NoError(err)
	defer r.Close()
	content, err := io.ReadAll(r)

	// Then they come out by index
	req.NoError(err)
	req.Equal("ABC", string(content))
}

func TestChunkStore_OverwriteReplacesContent(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	store := NewChunkStore(fs, "/chunks", slog.Default())
	ctx := context.Background()

	_, err := store.PutChunk(ctx, "S2", 0, bytes.NewBufferString("first attempt, longer"))
	req.NoError(err)
	_, err = store.PutChunk(ctx, "S2", 0, bytes.NewBufferString("retry"))
	req.NoError(err)

	content, err := afero.ReadFile(fs, "/chunks/S2/0")
	req.NoError(err)
	req.Equal("retry", string(content))

	// No temporary file is left next to the chunk
	entries, err := afero.ReadDir(fs, "/chunks/S2")
	req.NoError(err)
	req.Len(entries, 1)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestChunkStore_FailedWriteIsInvisible(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	store := NewChunkStore(fs, "/chunks", slog.Default())

	_, err := store.PutChunk(context.Background(), "S3", 0, io.MultiReader(bytes.NewBufferString("half"), failingReader{}))
	req.Error(err)

	exists, err := afero.Exists(fs, "/chunks/S3/0")
	req.NoError(err)
	req.False(exists)

	entries, err := afero.ReadDir(fs, "/chunks/S3")
	req.NoError(err)
	req.Empty(entries, "partial temp file must be removed")
}

func TestChunkStore_MissingChunk(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	store := NewChunkStore(fs, "/chunks", slog.Default())
	ctx := context.Background()

	_, err := store.PutChunk(ctx, "S4", 0, bytes.NewBufferString("A"))
	req.NoError(err)
	_, err = store.PutChunk(ctx, "S4", 2, bytes.NewBufferString("C"))
	req.NoError(err)

	r, err := store.ReadChunksInOrder(ctx, "S4", 3)
	req.NoError(err)
	defer r.Close()

	_, err = io.ReadAll(r)
	req.ErrorIs(err, apperrors.ErrMissingChunk)
	req.Contains(err.Error(), "index 1")
}

func TestChunkStore_DiscardSession(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	store := NewChunkStore(fs, "/chunks", slog.Default())
	ctx := context.Background()

	_, err := store.PutChunk(ctx, "S5", 0, bytes.NewBufferString("A"))
	req.NoError(err)
	_, err = store.PutChunk(ctx, "other", 0, bytes.NewBufferString("Z"))
	req.NoError(err)

	req.NoError(store.DiscardSession(ctx, "S5"))

	exists, err := afero.DirExists(fs, "/chunks/S5")
	req.NoError(err)
	req.False(exists)

	exists, err = afero.Exists(fs, "/chunks/other/0")
	req.NoError(err)
	req.True(exists, "other sessions are untouched")
}

func TestChunkStore_RejectsUnsafeIdentifiers(t *testing.T) {
	req := require.New(t)
	store := NewChunkStore(afero.NewMemMapFs(), "/chunks", slog.Default())
	ctx := context.Background()

	for _, id := range []domain.SessionID{"", "..", "a/b", "../../etc"} {
		_, err := store.PutChunk(ctx, id, 0, bytes.NewBufferString("x"))
		req.ErrorIs(err, apperrors.ErrInvalidRequest, "id %q", id)
	}

	_, err := store.PutChunk(ctx, "ok", -1, bytes.NewBufferString("x"))
	req.ErrorIs(err, apperrors.ErrInvalidRequest)
}
