//go:generate go run go.uber.org/mock/mockgen -source=retrieval_service.go -destination=../mocks/mock_retrieval_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"filedrop/contract"
	"filedrop/domain"
	"filedrop/errors"
)

type IRetrievalService interface {
	Resolve(ctx context.Context, id string) (domain.Artifact, error)
	Open(ctx context.Context, artifact domain.Artifact) (io.ReadCloser, error)
}

type RetrievalService struct {
	artifacts        contract.ArtifactStore
	observer         contract.UploadObserver
	log              *slog.Logger
	downloadsEnabled bool
}

func NewRetrievalService(artifacts contract.ArtifactStore, observer contract.UploadObserver, log *slog.Logger, downloadsEnabled bool) *RetrievalService {
	return &RetrievalService{
		artifacts:        artifacts,
		observer:         observer,
		log:              log,
		downloadsEnabled: downloadsEnabled,
	}
}

// Resolve finds the artifact whose id starts with id.
// With downloads disabled it fails before looking anything up, so existence never leaks.
func (s *RetrievalService) Resolve(ctx context.Context, id string) (domain.Artifact, error) {
	if !s.downloadsEnabled {
		return domain.Artifact{}, errors.ErrDownloadsDisabled
	}
	if id == "" {
		return domain.Artifact{}, fmt.Errorf("%w: empty upload id", errors.ErrInvalidRequest)
	}

	artifact, err := s.artifacts.FindByPrefix(ctx, id)
	if err != nil {
		return domain.Artifact{}, err
	}
	s.log.Debug("Artifact resolved", "upload_id", id, "artifact_id", artifact.ID)
	return artifact, nil
}

func (s *RetrievalService) Open(ctx context.Context, artifact domain.Artifact) (io.ReadCloser, error) {
	if !s.downloadsEnabled {
		return nil, errors.ErrDownloadsDisabled
	}
	r, err := s.artifacts.Open(ctx, artifact.ID)
	if err != nil {
		return nil, err
	}
	s.observer.ArtifactServed(artifact.Size)
	return r, nil
}
