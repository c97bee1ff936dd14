package storage

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"

	"filedrop/domain"
	"filedrop/errors"

	"github.com/spf13/afero"
)

// ChunkStore persists raw chunk bytes under <root>/<session-id>/<chunk-index>.
// Each session owns its own directory so writers of different sessions never overlap.
type ChunkStore struct {
	fs   afero.Fs
	root string
	log  *slog.Logger
}

func NewChunkStore(fs afero.Fs, root string, log *slog.Logger) *ChunkStore {
	return &ChunkStore{fs: fs, root: root, log: log}
}

func (s *ChunkStore) sessionDir(id domain.SessionID) string {
	return filepath.Join(s.root, string(id))
}

func (s *ChunkStore) chunkPath(id domain.SessionID, index domain.ChunkIndex) string {
	return filepath.Join(s.sessionDir(id), strconv.Itoa(int(index)))
}

// PutChunk writes the payload to a temporary file and renames it over the final
// chunk path, so a reader sees either the previous content or the new one in full.
func (s *ChunkStore) PutChunk(ctx context.Context, id domain.SessionID, index domain.ChunkIndex, r io.Reader) (int64, error) {
	if err := checkName(string(id)); err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, fmt.Errorf("%w: negative chunk index %d", errors.ErrInvalidRequest, index)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dir := s.sessionDir(id)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create chunk directory for %s: %w", id, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, fmt.Sprintf(".%d-*.part", index))
	if err != nil {
		return 0, fmt.Errorf("create temp chunk for %s: %w", id, err)
	}
	tmpName := tmp.Name()

	n, err := io.Copy(tmp, r)
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := s.fs.Remove(tmpName); rmErr != nil {
			s.log.Warn("Failed to remove partial chunk", "session_id", id, "chunk_index", index, "error", rmErr)
		}
		return 0, fmt.Errorf("write chunk %d of %s: %w", index, id, err)
	}

	if err := s.fs.Rename(tmpName, s.chunkPath(id, index)); err != nil {
		_ = s.fs.Remove(tmpName)
		return 0, fmt.Errorf("publish chunk %d of %s: %w", index, id, err)
	}

	s.log.Debug("Chunk stored", "session_id", id, "chunk_index", index, "bytes", n)
	return n, nil
}

// ReadChunksInOrder opens chunks one at a time while the returned reader is consumed.
// An absent chunk surfaces as ErrMissingChunk from Read.
func (s *ChunkStore) ReadChunksInOrder(ctx context.Context, id domain.SessionID, total int) (io.ReadCloser, error) {
	if err := checkName(string(id)); err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: total chunks must be positive, got %d", errors.ErrInvalidRequest, total)
	}
	return &chunkReader{ctx: ctx, store: s, id: id, total: total}, nil
}

// DiscardSession removes the session directory and every chunk in it.
func (s *ChunkStore) DiscardSession(_ context.Context, id domain.SessionID) error {
	if err := checkName(string(id)); err != nil {
		return err
	}
	if err := s.fs.RemoveAll(s.sessionDir(id)); err != nil {
		return fmt.Errorf("discard chunks of %s: %w", id, err)
	}
	return nil
}

type chunkReader struct {
	ctx     context.Context
	store   *ChunkStore
	id      domain.SessionID
	total   int
	next    int
	current afero.File
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for {
		if r.current == nil {
			if r.next >= r.total {
				return 0, io.EOF
			}
			if err := r.ctx.Err(); err != nil {
				return 0, err
			}
			f, err := r.store.fs.Open(r.store.chunkPath(r.id, domain.ChunkIndex(r.next)))
			if stderrors.Is(err, fs.ErrNotExist) {
				return 0, fmt.Errorf("%w: session %s index %d", errors.ErrMissingChunk, r.id, r.next)
			}
			if err != nil {
				return 0, fmt.Errorf("open chunk %d of %s: %w", r.next, r.id, err)
			}
			r.current = f
			r.next++
		}

		n, err := r.current.Read(p)
		if stderrors.Is(err, io.EOF) {
			_ = r.current.Close()
			r.current = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (r *chunkReader) Close() error {
	if r.current == nil {
		return nil
	}
	err := r.current.Close()
	r.current = nil
	return err
}

// checkName rejects identifiers that would escape their storage area.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("%w: unusable identifier %q", errors.ErrInvalidRequest, name)
	}
	return nil
}
