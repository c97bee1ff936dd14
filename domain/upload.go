package domain

import "io"

// ChunkRequest is one chunk arrival as handed over by the transport layer.
type ChunkRequest struct {
	SessionID   SessionID `validate:"required,max=256"`
	Index       int       `validate:"gte=0,ltfield=TotalChunks"`
	TotalChunks int       `validate:"gt=0"`
	DisplayName string    `validate:"required,max=1024"`
	Payload     io.Reader `validate:"-"`
}

// UploadOutcome is what a successful chunk arrival reports back to the caller.
type UploadOutcome int

const (
	ChunkAccepted UploadOutcome = iota
	UploadComplete
)

// UploadResult carries the artifact when the chunk completed the upload.
type UploadResult struct {
	Outcome  UploadOutcome
	Artifact *Artifact
}

func (o UploadOutcome) String() string {
	switch o {
	case UploadComplete:
		return "upload_complete"
	default:
		return "chunk_accepted"
	}
}

const KB = 1024
const MB = KB * KB
