package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrInvalidRequest        = fmt.Errorf("invalid request")
	ErrTotalMismatch         = fmt.Errorf("total chunk count mismatch")
	ErrAssemblyInProgress    = fmt.Errorf("upload is being assembled")
	ErrUploadAlreadyComplete = fmt.Errorf("upload already complete")

	ErrMissingChunk = fmt.Errorf("missing chunk")
	ErrAssembly     = fmt.Errorf("assembly failed")

	ErrArtifactNotFound  = fmt.Errorf("artifact not found")
	ErrDownloadsDisabled = fmt.Errorf("downloads are disabled")
)

// IsClientError reports whether err is caused by the request itself.
// Such errors never alter session state and are not retried server side.
func IsClientError(err error) bool {
	return stderrors.Is(err, ErrInvalidRequest) || stderrors.Is(err, ErrTotalMismatch)
}

// IsAlreadyComplete reports whether err means the session was claimed by another arrival.
func IsAlreadyComplete(err error) bool {
	return stderrors.Is(err, ErrAssemblyInProgress) || stderrors.Is(err, ErrUploadAlreadyComplete)
}
