// Package storage builds the configured ObjectStorage backend from the
// startup credential blob.
package storage

import (
	"context"
	"fmt"

	"photorelay/internal/config"
	"photorelay/internal/credentials"
	"photorelay/internal/domain"
	"photorelay/internal/port"
	"photorelay/internal/storage/drive"
	s3storage "photorelay/internal/storage/s3"
)

// New parses the credential blob for cfg.Storage.Backend and returns the
// authenticated store. Any error here means the process cannot serve.
func New(ctx context.Context, cfg *config.Config) (port.ObjectStorage, error) {
	blob, err := credentials.Load(cfg.Storage.Credentials, cfg.Storage.CredentialsFile)
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case config.BackendDrive:
		account, err := credentials.ParseServiceAccount(blob)
		if err != nil {
			return nil, err
		}
		return drive.NewDriveStorage(ctx, account)
	case config.BackendS3:
		key, err := credentials.ParseAccessKey(blob)
		if err != nil {
			return nil, err
		}
		return s3storage.NewS3Client(ctx, &cfg.S3, key)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, cfg.Storage.Backend)
	}
}
