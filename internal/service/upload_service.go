package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"photorelay/internal/domain"
	"photorelay/internal/port"
)

// Object metadata keys attached to stored photos.
const (
	MetaPhoneID  = "phoneId"
	MetaClientIP = "clientIp"
)

var unsafeNameChars = strings.NewReplacer(":", "-", ".", "-")

// PhotoName returns the object name for a photo received at t, e.g.
// photo_2024-05-01T10-20-30-123Z. Names sort lexically by time.
func PhotoName(t time.Time) string {
	return domain.PhotoNamePrefix + unsafeNameChars.Replace(domain.FormatTimestamp(t))
}

// UploadService defines the photo relay contract.
type UploadService interface {
	Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error)
}

type uploadService struct {
	storage port.ObjectStorage
	target  domain.StorageTarget
	now     func() time.Time
	log     logrus.FieldLogger
}

// NewUploadService creates a new UploadService implementation. now may be nil,
// in which case time.Now is used.
func NewUploadService(
	storage port.ObjectStorage,
	target domain.StorageTarget,
	now func() time.Time,
	log logrus.FieldLogger,
) UploadService {
	if now == nil {
		now = time.Now
	}
	return &uploadService{
		storage: storage,
		target:  target,
		now:     now,
		log:     log,
	}
}

// Upload stores req.Data once under a generated name. The phone id is not
// checked against earlier uploads; repeated submissions create new objects.
func (s *uploadService) Upload(ctx context.Context, req domain.UploadRequest) (*domain.UploadResult, error) {
	if len(req.Data) > domain.MaxPhotoBytes {
		return nil, domain.ErrFileTooLarge
	}

	name := PhotoName(s.now())
	log := s.log.WithFields(logrus.Fields{
		"name":      name,
		"bytes":     len(req.Data),
		"phone_id":  req.PhoneID,
		"client_ip": req.ClientIP,
	})

	out, err := s.storage.Store(ctx, port.StoreInput{
		Data:      req.Data,
		Name:      name,
		MimeType:  domain.PhotoMimeType,
		Container: s.target.Container,
		Metadata:  objectMetadata(req),
	})
	if err != nil {
		log.WithError(err).Error("uploadService.Upload: store failed")
		return nil, err
	}

	log = log.WithField("file_id", out.ID)
	if out.Version != "" {
		log = log.WithField("version", out.Version)
	}
	log.Info("uploadService.Upload: stored photo")
	return &domain.UploadResult{FileID: out.ID, Name: out.Name}, nil
}

func objectMetadata(req domain.UploadRequest) map[string]string {
	meta := map[string]string{}
	if req.PhoneID != "" {
		meta[MetaPhoneID] = req.PhoneID
	}
	if req.ClientIP != "" {
		meta[MetaClientIP] = req.ClientIP
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
