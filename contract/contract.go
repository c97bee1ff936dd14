//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"io"
	"reflect"
	"time"

	"filedrop/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// SessionTracker is the only authority deciding whether a session is complete.
// RegisterChunk creates the session if absent; the first call fixes the total.
type SessionTracker interface {
	RegisterChunk(ctx context.Context, id domain.SessionID, index domain.ChunkIndex, total int) (domain.RegisterResult, error)
	// Finish drops the claim of an assembled session and remembers it as completed.
	Finish(ctx context.Context, id domain.SessionID) error
	// Release drops the claim of a session whose assembly failed, keeping its received set.
	Release(ctx context.Context, id domain.SessionID) error
	Sessions(ctx context.Context) ([]domain.SessionState, error)
	// Forget drops a pending session last updated before staleBefore and reports whether it did.
	Forget(ctx context.Context, id domain.SessionID, staleBefore time.Time) (bool, error)
}

type ChunkStore interface {
	PutChunk(ctx context.Context, id domain.SessionID, index domain.ChunkIndex, r io.Reader) (int64, error)
	// ReadChunksInOrder returns a lazy reader over chunks 0..total-1.
	ReadChunksInOrder(ctx context.Context, id domain.SessionID, total int) (io.ReadCloser, error)
	DiscardSession(ctx context.Context, id domain.SessionID) error
}

// StagedArtifact is an artifact being written. Nothing is visible before Commit.
type StagedArtifact interface {
	io.Writer
	Commit() (domain.Artifact, error)
	Abort() error
}

type ArtifactStore interface {
	Stage(ctx context.Context, id domain.ArtifactID) (StagedArtifact, error)
	FindByPrefix(ctx context.Context, prefix string) (domain.Artifact, error)
	Open(ctx context.Context, id domain.ArtifactID) (io.ReadCloser, error)
}

// ArtifactAssembler turns the chunks of a completed session into one artifact.
type ArtifactAssembler interface {
	Assemble(ctx context.Context, id domain.SessionID, total int, displayName string) (domain.Artifact, error)
}

type UploadObserver interface {
	ChunkReceived(bytes int64)
	ChunkRejected(reason string)
	AssemblyFinished(result string, seconds float64, bytes int64)
	ArtifactServed(bytes int64)
	SessionsSwept(count int)
	StorageUsage(area string, freeBytes uint64, usedPercent float64)
}
