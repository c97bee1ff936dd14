package services

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"filedrop/domain"
	"filedrop/errors"
	"filedrop/mocks"
	"filedrop/observability"
	"filedrop/runtime"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type coordinatorFixture struct {
	fs          afero.Fs
	tracker     *MemorySessionTracker
	coordinator *UploadCoordinator
}

func newCoordinatorFixture() coordinatorFixture {
	fs := afero.NewMemMapFs()
	log := slog.Default()
	chunks, artifacts := newFsStores(fs)
	tracker := NewMemorySessionTracker(runtime.NewLockTable(8), log, time.Hour)
	assembler := NewAssembler(chunks, artifacts, log)
	coordinator := NewUploadCoordinator(tracker, chunks, assembler, artifacts, observability.NopObserver{}, log)
	return coordinatorFixture{fs: fs, tracker: tracker, coordinator: coordinator}
}

func chunkRequest(id domain.SessionID, index, total int, name, payload string) domain.ChunkRequest {
	return domain.ChunkRequest{
		SessionID:   id,
		Index:       index,
		TotalChunks: total,
		DisplayName: name,
		Payload:     bytes.NewBufferString(payload),
	}
}

func TestUploadCoordinator_OutOfOrderUpload(t *testing.T) {
	req := require.New(t)
	f := newCoordinatorFixture()
	ctx := context.Background()
	payloads := []string{"A", "B", "C"}

	// Given chunks 1 and 0 of a three chunk upload
	for _, index := range []int{1, 0} {
		result, err := f.coordinator.HandleChunk(ctx, chunkRequest("S1", index, 3, "abc.txt", payloads[index]))
		req.NoError(err)
		req.Equal(domain.ChunkAccepted, result.Outcome)
		req.Nil(result.Artifact)
	}

	// When the last chunk arrives
	result, err := f.coordinator.HandleChunk(ctx, chunkRequest("S1", 2, 3, "abc.txt", payloads[2]))

	// Then the upload is complete and the artifact holds the chunks in order
	req.NoError(err)
	req.Equal(domain.UploadComplete, result.Outcome)
	req.NotNil(result.Artifact)
	req.Equal(domain.ArtifactID("S1_abc.txt"), result.Artifact.ID)

	content, err := afero.ReadFile(f.fs, "/storage/S1_abc.txt")
	req.NoError(err)
	req.Equal("ABC", string(content))

	// And a late duplicate is rejected without leaving chunks behind
	_, err = f.coordinator.HandleChunk(ctx, chunkRequest("S1", 0, 3, "abc.txt", "A"))
	req.ErrorIs(err, errors.ErrUploadAlreadyComplete)
	exists, err := afero.DirExists(f.fs, "/chunks/S1")
	req.NoError(err)
	req.False(exists)
}

func TestUploadCoordinator_DuplicateChunkIsIdempotent(t *testing.T) {
	req := require.New(t)
	f := newCoordinatorFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := f.coordinator.HandleChunk(ctx, chunkRequest("dup", 0, 2, "d.bin", "X"))
		req.NoError(err)
		req.Equal(domain.ChunkAccepted, result.Outcome)
	}

	result, err := f.coordinator.HandleChunk(ctx, chunkRequest("dup", 1, 2, "d.bin", "Y"))
	req.NoError(err)
	req.Equal(domain.UploadComplete, result.Outcome)

	content, err := afero.ReadFile(f.fs, "/storage/dup_d.bin")
	req.NoError(err)
	req.Equal("XY", string(content))
}

func TestUploadCoordinator_RejectsInvalidRequests(t *testing.T) {
	req := require.New(t)
	f := newCoordinatorFixture()
	ctx := context.Background()

	cases := []domain.ChunkRequest{
		chunkRequest("", 0, 1, "a", "x"),
		chunkRequest("S", 1, 1, "a", "x"),
		chunkRequest("S", -1, 1, "a", "x"),
		chunkRequest("S", 0, 0, "a", "x"),
		chunkRequest("../up", 0, 1, "a", "x"),
		chunkRequest("S", 0, 1, "", "x"),
		{SessionID: "S", Index: 0, TotalChunks: 1, DisplayName: "a"},
	}
	for _, c := range cases {
		_, err := f.coordinator.HandleChunk(ctx, c)
		req.ErrorIs(err, errors.ErrInvalidRequest, "request %+v", c)
	}

	// Nothing reached the chunk area
	exists, err := afero.DirExists(f.fs, "/chunks")
	req.NoError(err)
	req.False(exists)
}

func TestUploadCoordinator_TotalMismatch(t *testing.T) {
	req := require.New(t)
	f := newCoordinatorFixture()
	ctx := context.Background()

	_, err := f.coordinator.HandleChunk(ctx, chunkRequest("mm", 0, 3, "m.txt", "A"))
	req.NoError(err)

	_, err = f.coordinator.HandleChunk(ctx, chunkRequest("mm", 1, 2, "m.txt", "B"))
	req.ErrorIs(err, errors.ErrTotalMismatch)
	req.True(errors.IsClientError(err))

	sessions, err := f.tracker.Sessions(ctx)
	req.NoError(err)
	req.Len(sessions, 1)
	req.Equal(3, sessions[0].TotalChunks)
}

func TestUploadCoordinator_ConcurrentChunksCompleteOnce(t *testing.T) {
	req := require.New(t)
	f := newCoordinatorFixture()
	ctx := context.Background()

	const total = 16
	results := make(chan domain.UploadResult, total)
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			payload := string(rune('a' + index))
			result, err := f.coordinator.HandleChunk(ctx, chunkRequest("par", index, total, "p.txt", payload))
			if err == nil {
				results <- result
			}
		}(i)
	}
	wg.Wait()
	close(results)

	var complete, accepted int
	for result := range results {
		switch result.Outcome {
		case domain.UploadComplete:
			complete++
		case domain.ChunkAccepted:
			accepted++
		}
	}
	req.Equal(1, complete)
	req.Equal(total-1, accepted)

	content, err := afero.ReadFile(f.fs, "/storage/par_p.txt")
	req.NoError(err)
	req.Equal("abcdefghijklmnop", string(content))
}

func TestUploadCoordinator_FailedAssemblyCanBeRetried(t *testing.T) {
	req := require.New(t)
	f := newCoordinatorFixture()
	ctx := context.Background()

	_, err := f.coordinator.HandleChunk(ctx, chunkRequest("flaky", 0, 2, "f.bin", "A"))
	req.NoError(err)

	// Given chunk 0 lost from the chunk area after registration
	req.NoError(f.fs.Remove("/chunks/flaky/0"))

	// When the last chunk arrives, assembly fails
	_, err = f.coordinator.HandleChunk(ctx, chunkRequest("flaky", 1, 2, "f.bin", "B"))
	req.ErrorIs(err, errors.ErrAssembly)
	req.ErrorIs(err, errors.ErrMissingChunk)

	_, err = afero.ReadFile(f.fs, "/storage/flaky_f.bin")
	req.Error(err, "no artifact after a failed assembly")

	// Then resending the lost chunk completes the upload
	result, err := f.coordinator.HandleChunk(ctx, chunkRequest("flaky", 0, 2, "f.bin", "A"))
	req.NoError(err)
	req.Equal(domain.UploadComplete, result.Outcome)

	content, err := afero.ReadFile(f.fs, "/storage/flaky_f.bin")
	req.NoError(err)
	req.Equal("AB", string(content))
}

func TestUploadCoordinator_ReleasesClaimWhenAssemblyFails(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockSessionTracker(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)
	assembler := mocks.NewMockArtifactAssembler(ctrl)
	artifacts := mocks.NewMockArtifactStore(ctrl)
	observer := mocks.NewMockUploadObserver(ctrl)

	chunks.EXPECT().PutChunk(gomock.Any(), domain.SessionID("S9"), domain.ChunkIndex(0), gomock.Any()).Return(int64(1), nil)
	tracker.EXPECT().RegisterChunk(gomock.Any(), domain.SessionID("S9"), domain.ChunkIndex(0), 1).Return(domain.Complete, nil)
	observer.EXPECT().ChunkReceived(int64(1))
	assembler.EXPECT().Assemble(gomock.Any(), domain.SessionID("S9"), 1, "z.bin").Return(domain.Artifact{}, stderrors.New("disk full"))
	observer.EXPECT().AssemblyFinished("failure", gomock.Any(), int64(0))
	tracker.EXPECT().Release(gomock.Any(), domain.SessionID("S9")).Return(nil)
	tracker.EXPECT().Finish(gomock.Any(), gomock.Any()).Times(0)

	coordinator := NewUploadCoordinator(tracker, chunks, assembler, artifacts, observer, slog.Default())
	_, err := coordinator.HandleChunk(context.Background(), chunkRequest("S9", 0, 1, "z.bin", "Z"))

	req.ErrorIs(err, errors.ErrAssembly)
	req.Contains(err.Error(), "disk full")
}

func TestUploadCoordinator_ClaimSettlesAfterCancellation(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockSessionTracker(ctrl)
	chunks := mocks.NewMockChunkStore(ctrl)
	assembler := mocks.NewMockArtifactAssembler(ctrl)
	artifacts := mocks.NewMockArtifactStore(ctrl)
	ctx, cancel := context.WithCancel(context.Background())

	chunks.EXPECT().PutChunk(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
	tracker.EXPECT().RegisterChunk(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(domain.Complete, nil)
	assembler.EXPECT().Assemble(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.SessionID, int, string) (domain.Artifact, error) {
			cancel()
			return domain.Artifact{ID: "S8_y.bin", Size: 1}, nil
		})
	tracker.EXPECT().Finish(gomock.Any(), domain.SessionID("S8")).
		DoAndReturn(func(ctx context.Context, _ domain.SessionID) error {
			return ctx.Err()
		})

	coordinator := NewUploadCoordinator(tracker, chunks, assembler, artifacts, observability.NopObserver{}, slog.Default())
	result, err := coordinator.HandleChunk(ctx, chunkRequest("S8", 0, 1, "y.bin", "Y"))

	req.NoError(err)
	req.Equal(domain.UploadComplete, result.Outcome)
}

func TestUploadCoordinator_SingleShot(t *testing.T) {
	req := require.New(t)
	f := newCoordinatorFixture()
	f.coordinator.newID = func() string { return "fixed" }

	artifact, err := f.coordinator.HandleSingleShot(context.Background(), "../f.txt", bytes.NewBufferString("hello"))
	req.NoError(err)
	req.Equal(domain.ArtifactID("fixed_f.txt"), artifact.ID)
	req.Equal(int64(5), artifact.Size)

	content, err := afero.ReadFile(f.fs, "/storage/fixed_f.txt")
	req.NoError(err)
	req.Equal("hello", string(content))

	sessions, err := f.tracker.Sessions(context.Background())
	req.NoError(err)
	req.Empty(sessions, "single-shot uploads bypass the tracker")

	_, err = f.coordinator.HandleSingleShot(context.Background(), "f.txt", nil)
	req.ErrorIs(err, errors.ErrInvalidRequest)
}
