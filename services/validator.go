package services

import (
	"fmt"
	"unicode"

	"filedrop/domain"
	"filedrop/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateChunk(req domain.ChunkRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidRequest, err)
	}
	if !isSessionIDSafe(string(req.SessionID)) {
		return fmt.Errorf("%w: session id %q contains unsupported characters", errors.ErrInvalidRequest, req.SessionID)
	}
	if req.Payload == nil {
		return fmt.Errorf("%w: missing chunk payload", errors.ErrInvalidRequest)
	}
	return nil
}

// isSessionIDSafe accepts tokens usable as a directory name and as an artifact
// prefix: letters, digits, '-', '_' and '.', but never "." or "..".
func isSessionIDSafe(s string) bool {
	if s == "." || s == ".." {
		return false
	}
	for _, char := range s {
		switch {
		case char > unicode.MaxASCII:
			return false
		case unicode.IsLetter(char), unicode.IsDigit(char):
		case char == '-' || char == '_' || char == '.':
		default:
			return false
		}
	}
	return true
}
