package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"photorelay/internal/domain"
	"photorelay/internal/metrics"
	"photorelay/internal/service"
)

// multipartOverhead is the allowance for boundaries, part headers and the
// phoneId field on top of the photo itself.
const multipartOverhead = 64 << 10

// photoField is the only form field that may carry a file.
const photoField = "photo"

// maxBodyBytes caps how much of a request body is read at all.
const maxBodyBytes = domain.MaxPhotoBytes + multipartOverhead

// UploadHandler handles the photo upload endpoint.
type UploadHandler struct {
	uploadService service.UploadService
	metrics       *metrics.Metrics
	log           logrus.FieldLogger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadService service.UploadService, m *metrics.Metrics, log logrus.FieldLogger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, metrics: m, log: log}
}

// Upload handles POST /upload
// @Summary Upload a photo
// @Description Relay a JPEG photo (max 8 MiB) to the configured storage backend
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Photo to upload"
// @Param phoneId formData string false "Client device identifier"
// @Success 200 {object} UploadResponse "Photo stored"
// @Failure 400 {object} ErrorResponse "Missing, duplicate or oversized photo"
// @Failure 403 {object} ErrorResponse "Origin not allowed"
// @Failure 500 {object} ErrorResponse "Upload failed"
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	req, err := h.readUploadRequest(c)
	if err != nil {
		h.metrics.Rejected()
		HandleError(c, h.log, err)
		return
	}

	start := time.Now()
	result, err := h.uploadService.Upload(c.Request.Context(), *req)
	if err != nil {
		if _, _, clientErr := MapDomainError(err); clientErr {
			h.metrics.Rejected()
		} else {
			h.metrics.Failed(time.Since(start))
		}
		HandleError(c, h.log, err)
		return
	}
	h.metrics.Stored(len(req.Data), time.Since(start))

	RespondUploaded(c, result)
}

// readUploadRequest validates the multipart body and buffers the photo. The
// whole payload is in memory before any backend call is made.
func (h *UploadHandler) readUploadRequest(c *gin.Context) (*domain.UploadRequest, error) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.ErrRequestTooLarge
		}
		return nil, domain.ErrMissingFile
	}

	header, err := singlePhoto(form)
	if err != nil {
		return nil, err
	}
	if header.Size > domain.MaxPhotoBytes {
		return nil, domain.ErrFileTooLarge
	}

	file, err := header.Open()
	if err != nil {
		return nil, domain.ErrMissingFile
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, domain.MaxPhotoBytes+1))
	if err != nil {
		return nil, domain.ErrMissingFile
	}
	if len(data) > domain.MaxPhotoBytes {
		return nil, domain.ErrFileTooLarge
	}

	return &domain.UploadRequest{
		Data:     data,
		PhoneID:  c.PostForm("phoneId"),
		ClientIP: c.ClientIP(),
	}, nil
}

// singlePhoto returns the only file part of form. It must be named photo.
func singlePhoto(form *multipart.Form) (*multipart.FileHeader, error) {
	for field, headers := range form.File {
		if field != photoField && len(headers) > 0 {
			return nil, domain.ErrUnexpectedFile
		}
	}
	switch photos := form.File[photoField]; len(photos) {
	case 0:
		return nil, domain.ErrMissingFile
	case 1:
		return photos[0], nil
	default:
		return nil, domain.ErrUnexpectedFile
	}
}
