package port

import (
	"context"
)

// StoreInput encapsulates the parameters needed to store one object.
type StoreInput struct {
	Data      []byte
	Name      string
	MimeType  string
	Container string
	Metadata  map[string]string
}

// StoreOutput contains the result of a successful store.
type StoreOutput struct {
	ID   string
	Name string
	// Version is the backend's object version, when it keeps one.
	Version string
}

// ObjectStorage abstracts the remote object store. Implementations are
// constructed once and are safe for concurrent use. Store performs exactly
// one remote write and never retries; failures are *domain.StorageError.
type ObjectStorage interface {
	Store(ctx context.Context, input StoreInput) (*StoreOutput, error)
	// Principal identifies the credential the store writes with.
	Principal() string
}
