package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"filedrop/contract"
	"filedrop/domain"
)

// Assembler concatenates the chunks of a completed session, in index order, into one artifact.
// It must only be invoked by the caller that the session tracker reported as the completer.
type Assembler struct {
	chunks    contract.ChunkStore
	artifacts contract.ArtifactStore
	log       *slog.Logger
}

func NewAssembler(chunks contract.ChunkStore, artifacts contract.ArtifactStore, log *slog.Logger) *Assembler {
	return &Assembler{chunks: chunks, artifacts: artifacts, log: log}
}

// Assemble writes the concatenation to a staging artifact and publishes it only when
// every chunk was copied. On failure the staging file is dropped and the chunks are
// kept so that a later completion can retry.
func (a *Assembler) Assemble(ctx context.Context, id domain.SessionID, total int, displayName string) (domain.Artifact, error) {
	artifactID := domain.NewArtifactID(string(id), displayName)

	staged, err := a.artifacts.Stage(ctx, artifactID)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("stage artifact %s: %w", artifactID, err)
	}

	if err := a.copyChunks(ctx, staged, id, total); err != nil {
		if abortErr := staged.Abort(); abortErr != nil {
			a.log.Warn("Failed to drop staging artifact", "artifact_id", artifactID, "error", abortErr)
		}
		return domain.Artifact{}, err
	}

	artifact, err := staged.Commit()
	if err != nil {
		return domain.Artifact{}, err
	}

	// The artifact is committed at this point, cleanup failures are only logged.
	if err := a.chunks.DiscardSession(ctx, id); err != nil {
		a.log.Error("Failed to discard chunks after assembly", "session_id", id, "error", err)
	}

	a.log.Info("Upload assembled", "session_id", id, "artifact_id", artifact.ID, "total_chunks", total, "bytes", artifact.Size)
	return artifact, nil
}

func (a *Assembler) copyChunks(ctx context.Context, dst io.Writer, id domain.SessionID, total int) error {
	src, err := a.chunks.ReadChunksInOrder(ctx, id, total)
	if err != nil {
		return fmt.Errorf("read chunks of %s: %w", id, err)
	}
	defer src.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("concatenate chunks of %s: %w", id, err)
	}
	return nil
}
