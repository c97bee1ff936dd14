//go:generate go run go.uber.org/mock/mockgen -source=upload_coordinator.go -destination=../mocks/mock_upload_coordinator.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"filedrop/contract"
	"filedrop/domain"
	"filedrop/errors"

	"github.com/google/uuid"
)

type IUploadCoordinator interface {
	HandleChunk(ctx context.Context, req domain.ChunkRequest) (domain.UploadResult, error)
	HandleSingleShot(ctx context.Context, displayName string, r io.Reader) (domain.Artifact, error)
}

// UploadCoordinator drives one chunk arrival: persist, register, and assemble
// when the tracker reports this arrival as the one completing the session.
type UploadCoordinator struct {
	tracker   contract.SessionTracker
	chunks    contract.ChunkStore
	assembler contract.ArtifactAssembler
	artifacts contract.ArtifactStore
	observer  contract.UploadObserver
	log       *slog.Logger
	newID     func() string
}

func NewUploadCoordinator(
	tracker contract.SessionTracker,
	chunks contract.ChunkStore,
	assembler contract.ArtifactAssembler,
	artifacts contract.ArtifactStore,
	observer contract.UploadObserver,
	log *slog.Logger,
) *UploadCoordinator {
	return &UploadCoordinator{
		tracker:   tracker,
		chunks:    chunks,
		assembler: assembler,
		artifacts: artifacts,
		observer:  observer,
		log:       log,
		newID:     uuid.NewString,
	}
}

// HandleChunk returns UploadComplete only once the artifact is committed.
// When assembly fails the session claim is released with its received set intact,
// so re-sending any chunk of the session runs the completion check again.
func (c *UploadCoordinator) HandleChunk(ctx context.Context, req domain.ChunkRequest) (domain.UploadResult, error) {
	if err := ValidateChunk(req); err != nil {
		c.observer.ChunkRejected("invalid")
		return domain.UploadResult{}, err
	}
	index := domain.ChunkIndex(req.Index)

	n, err := c.chunks.PutChunk(ctx, req.SessionID, index, req.Payload)
	if err != nil {
		c.observer.ChunkRejected("storage")
		return domain.UploadResult{}, fmt.Errorf("store chunk %d of %s: %w", index, req.SessionID, err)
	}

	result, err := c.tracker.RegisterChunk(ctx, req.SessionID, index, req.TotalChunks)
	if err != nil {
		c.observer.ChunkRejected(rejectReason(err))
		c.log.Warn("Chunk not registered", "session_id", req.SessionID, "chunk_index", index, "total_chunks", req.TotalChunks, "error", err)
		if stderrors.Is(err, errors.ErrUploadAlreadyComplete) {
			// The session's chunks were discarded after assembly, this write recreated them.
			c.discardStray(ctx, req.SessionID)
		}
		return domain.UploadResult{}, err
	}
	c.observer.ChunkReceived(n)

	if result != domain.Complete {
		return domain.UploadResult{Outcome: domain.ChunkAccepted}, nil
	}

	artifact, err := c.assemble(ctx, req)
	if err != nil {
		return domain.UploadResult{}, err
	}
	return domain.UploadResult{Outcome: domain.UploadComplete, Artifact: &artifact}, nil
}

func (c *UploadCoordinator) assemble(ctx context.Context, req domain.ChunkRequest) (domain.Artifact, error) {
	// Claim bookkeeping must settle even if the request was cancelled mid-assembly.
	settleCtx := context.WithoutCancel(ctx)
	started := time.Now()

	artifact, err := c.assembler.Assemble(ctx, req.SessionID, req.TotalChunks, req.DisplayName)
	if err != nil {
		c.observer.AssemblyFinished("failure", time.Since(started).Seconds(), 0)
		c.log.Error("Assembly failed, session kept for retry", "session_id", req.SessionID, "total_chunks", req.TotalChunks, "error", err)
		if relErr := c.tracker.Release(settleCtx, req.SessionID); relErr != nil {
			c.log.Error("Failed to release session claim", "session_id", req.SessionID, "error", relErr)
		}
		return domain.Artifact{}, fmt.Errorf("%w: %w", errors.ErrAssembly, err)
	}

	c.observer.AssemblyFinished("success", time.Since(started).Seconds(), artifact.Size)
	if err := c.tracker.Finish(settleCtx, req.SessionID); err != nil {
		c.log.Error("Failed to finish session", "session_id", req.SessionID, "error", err)
	}
	return artifact, nil
}

// HandleSingleShot stores a non-chunked upload directly as an artifact under a fresh id.
func (c *UploadCoordinator) HandleSingleShot(ctx context.Context, displayName string, r io.Reader) (domain.Artifact, error) {
	if r == nil {
		return domain.Artifact{}, fmt.Errorf("%w: missing file payload", errors.ErrInvalidRequest)
	}

	id := domain.NewArtifactID(c.newID(), displayName)
	staged, err := c.artifacts.Stage(ctx, id)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("stage artifact %s: %w", id, err)
	}
	if _, err := io.Copy(staged, r); err != nil {
		if abortErr := staged.Abort(); abortErr != nil {
			c.log.Warn("Failed to drop staging artifact", "artifact_id", id, "error", abortErr)
		}
		return domain.Artifact{}, fmt.Errorf("write artifact %s: %w", id, err)
	}

	artifact, err := staged.Commit()
	if err != nil {
		return domain.Artifact{}, err
	}
	c.log.Info("File saved", "artifact_id", artifact.ID, "bytes", artifact.Size)
	return artifact, nil
}

func (c *UploadCoordinator) discardStray(ctx context.Context, id domain.SessionID) {
	if err := c.chunks.DiscardSession(context.WithoutCancel(ctx), id); err != nil {
		c.log.Warn("Failed to discard late chunk", "session_id", id, "error", err)
	}
}

func rejectReason(err error) string {
	switch {
	case errors.IsClientError(err):
		return "client_error"
	case errors.IsAlreadyComplete(err):
		return "already_complete"
	default:
		return "tracker"
	}
}
