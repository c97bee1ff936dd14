package storage

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"filedrop/contract"
	"filedrop/domain"
	"filedrop/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
)

const (
	stagingDirName = ".staging"
	sniffLen       = 3072
)

// ArtifactStore keeps completed files in a flat directory keyed by artifact id.
// Writes go to <root>/.staging first and are published by a rename.
type ArtifactStore struct {
	fs   afero.Fs
	root string
	log  *slog.Logger
}

func NewArtifactStore(fs afero.Fs, root string, log *slog.Logger) *ArtifactStore {
	return &ArtifactStore{fs: fs, root: root, log: log}
}

func (s *ArtifactStore) path(id domain.ArtifactID) string {
	return filepath.Join(s.root, string(id))
}

// Stage opens a staging file for id. The artifact is invisible until Commit.
func (s *ArtifactStore) Stage(ctx context.Context, id domain.ArtifactID) (contract.StagedArtifact, error) {
	if err := checkName(string(id)); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Join(s.root, stagingDirName)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	f, err := afero.TempFile(s.fs, dir, string(id)+"-*")
	if err != nil {
		return nil, fmt.Errorf("create staging file for %s: %w", id, err)
	}
	return &stagedArtifact{store: s, id: id, file: f}, nil
}

// FindByPrefix returns the first artifact, in lexical order, whose id starts with prefix.
func (s *ArtifactStore) FindByPrefix(_ context.Context, prefix string) (domain.Artifact, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if stderrors.Is(err, fs.ErrNotExist) {
		return domain.Artifact{}, errors.ErrArtifactNotFound
	}
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("list artifacts: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		return s.describe(entry)
	}
	return domain.Artifact{}, fmt.Errorf("%w: %s", errors.ErrArtifactNotFound, prefix)
}

func (s *ArtifactStore) Open(_ context.Context, id domain.ArtifactID) (io.ReadCloser, error) {
	if err := checkName(string(id)); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(s.path(id))
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", errors.ErrArtifactNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("open artifact %s: %w", id, err)
	}
	return f, nil
}

func (s *ArtifactStore) describe(info os.FileInfo) (domain.Artifact, error) {
	id := domain.ArtifactID(info.Name())
	f, err := s.fs.Open(s.path(id))
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("open artifact %s: %w", id, err)
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("detect content type of %s: %w", id, err)
	}
	return domain.Artifact{
		ID:          id,
		Name:        displayName(id),
		Size:        info.Size(),
		ModTime:     info.ModTime(),
		ContentType: mime.String(),
	}, nil
}

// displayName strips the owner part of <owner>_<name>.
func displayName(id domain.ArtifactID) string {
	if _, name, ok := strings.Cut(string(id), "_"); ok && name != "" {
		return name
	}
	return string(id)
}

type stagedArtifact struct {
	store *ArtifactStore
	id    domain.ArtifactID
	file  afero.File
	size  int64
	head  bytes.Buffer
	done  bool
}

func (a *stagedArtifact) Write(p []byte) (int, error) {
	if a.done {
		return 0, fmt.Errorf("write to closed staging file %s", a.id)
	}
	if missing := sniffLen - a.head.Len(); missing > 0 {
		a.head.Write(p[:min(missing, len(p))])
	}
	n, err := a.file.Write(p)
	a.size += int64(n)
	return n, err
}

// Commit flushes the staging file and renames it to its final id.
func (a *stagedArtifact) Commit() (domain.Artifact, error) {
	if a.done {
		return domain.Artifact{}, fmt.Errorf("staging file %s already closed", a.id)
	}
	a.done = true

	tmpName := a.file.Name()
	err := a.file.Sync()
	if closeErr := a.file.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = a.store.fs.Rename(tmpName, a.store.path(a.id))
	}
	if err != nil {
		_ = a.store.fs.Remove(tmpName)
		return domain.Artifact{}, fmt.Errorf("commit artifact %s: %w", a.id, err)
	}

	info, err := a.store.fs.Stat(a.store.path(a.id))
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("stat artifact %s: %w", a.id, err)
	}

	a.store.log.Info("Artifact committed", "artifact_id", a.id, "bytes", a.size)
	return domain.Artifact{
		ID:          a.id,
		Name:        displayName(a.id),
		Size:        a.size,
		ModTime:     info.ModTime(),
		ContentType: mimetype.Detect(a.head.Bytes()).String(),
	}, nil
}

// Abort discards the staging file. It is a no-op after Commit.
func (a *stagedArtifact) Abort() error {
	if a.done {
		return nil
	}
	a.done = true
	tmpName := a.file.Name()
	_ = a.file.Close()
	if err := a.store.fs.Remove(tmpName); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("abort artifact %s: %w", a.id, err)
	}
	return nil
}
