package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscredentials "github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"photorelay/internal/config"
	"photorelay/internal/credentials"
	"photorelay/internal/domain"
	"photorelay/internal/port"
)

const backendName = "s3"

// partSize keeps every accepted photo inside a single PutObject.
const partSize = 2 * domain.MaxPhotoBytes

type s3Client struct {
	uploader  *manager.Uploader
	principal string
}

// NewS3Client creates an S3-backed ObjectStorage. A non-empty cfg.Endpoint
// targets an S3-compatible service (MinIO, R2, ...) with path-style addressing.
func NewS3Client(ctx context.Context, cfg *config.S3Config, key *credentials.AccessKey) (port.ObjectStorage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			awscredentials.NewStaticCredentialsProvider(key.AccessKeyID, key.SecretAccessKey, key.SessionToken),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.Retryer = aws.NopRetryer{}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3Client{
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = partSize
			u.Concurrency = 1
		}),
		principal: key.AccessKeyID,
	}, nil
}

func (c *s3Client) Store(ctx context.Context, input port.StoreInput) (*port.StoreOutput, error) {
	if input.Container == "" {
		return nil, &domain.StorageError{Backend: backendName, Message: "no bucket configured"}
	}

	result, err := c.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(input.Container),
		Key:           aws.String(input.Name),
		Body:          bytes.NewReader(input.Data),
		ContentType:   aws.String(input.MimeType),
		ContentLength: aws.Int64(int64(len(input.Data))),
		Metadata:      input.Metadata,
	})
	if err != nil {
		return nil, storageError(err)
	}

	// The key is the stable handle; a version id alone cannot address
	// the object.
	out := &port.StoreOutput{ID: input.Name, Name: input.Name}
	if result.VersionID != nil {
		out.Version = *result.VersionID
	}
	return out, nil
}

func (c *s3Client) Principal() string {
	return c.principal
}

func storageError(err error) *domain.StorageError {
	msg := err.Error()
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		msg = apiErr.ErrorMessage()
	}
	return &domain.StorageError{Backend: backendName, Message: msg, Err: err}
}
