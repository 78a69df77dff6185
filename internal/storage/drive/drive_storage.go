// Package drive stores photos as Google Drive files using a service account.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"photorelay/internal/credentials"
	"photorelay/internal/domain"
	"photorelay/internal/port"
)

const backendName = "drive"

type driveStorage struct {
	files     *drive.FilesService
	principal string
}

// NewDriveStorage authenticates as the service account and returns a
// Drive-backed ObjectStorage. ctx bounds token refreshes for the lifetime of
// the store. Extra opts are appended after the authenticated client and may
// override it.
func NewDriveStorage(ctx context.Context, account *credentials.ServiceAccount, opts ...option.ClientOption) (port.ObjectStorage, error) {
	jwtCfg, err := google.JWTConfigFromJSON(account.JSON(), drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredential, err)
	}

	clientOpts := append([]option.ClientOption{option.WithHTTPClient(jwtCfg.Client(ctx))}, opts...)
	svc, err := drive.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating drive service: %w", err)
	}

	return &driveStorage{files: svc.Files, principal: account.ClientEmail}, nil
}

// Store uploads input.Data as a single multipart request. ChunkSize(0)
// disables resumable chunking, so there is exactly one write and no retry.
func (s *driveStorage) Store(ctx context.Context, input port.StoreInput) (*port.StoreOutput, error) {
	file := &drive.File{
		Name:          input.Name,
		MimeType:      input.MimeType,
		AppProperties: input.Metadata,
	}
	if input.Container != "" {
		file.Parents = []string{input.Container}
	}

	created, err := s.files.Create(file).
		Media(bytes.NewReader(input.Data), googleapi.ContentType(input.MimeType), googleapi.ChunkSize(0)).
		Fields("id", "name").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, storageError(err)
	}

	return &port.StoreOutput{ID: created.Id, Name: created.Name}, nil
}

func (s *driveStorage) Principal() string {
	return s.principal
}

func storageError(err error) *domain.StorageError {
	msg := err.Error()
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return &domain.StorageError{Backend: backendName, Message: msg, Err: err}
}
