package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFile       = errors.New("no photo uploaded")
	ErrFileTooLarge      = errors.New("photo exceeds the 8 MiB limit")
	ErrRequestTooLarge   = errors.New("request body exceeds the upload limit")
	ErrUnexpectedFile    = errors.New("exactly one photo file is allowed")
	ErrOriginNotAllowed  = errors.New("origin not allowed")
	ErrMissingCredential = errors.New("storage credential blob is not configured")
	ErrInvalidCredential = errors.New("storage credential blob is malformed")
	ErrUnknownBackend    = errors.New("unknown storage backend")
)

// StorageError is returned by ObjectStorage implementations when the remote
// write fails. Message carries the backend's own description of the failure.
type StorageError struct {
	Backend string
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s store: %s", e.Backend, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
