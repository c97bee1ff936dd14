package domain

import (
	"fmt"
	"time"
)

type ArtifactID string

// Artifact is a completed, immutable file made available for download.
type Artifact struct {
	ID          ArtifactID
	Name        string
	Size        int64
	ModTime     time.Time
	ContentType string
}

// NewArtifactID builds the composite key <owner>_<display-name> that prefix lookups rely on.
func NewArtifactID(owner string, displayName string) ArtifactID {
	return ArtifactID(fmt.Sprintf("%s_%s", owner, SecureFilename(displayName)))
}
