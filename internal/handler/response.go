package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"photorelay/internal/domain"
	"photorelay/internal/middleware"
)

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	OK     bool   `json:"ok"`
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// RespondUploaded sends a 200 with the backend's id and name verbatim.
func RespondUploaded(c *gin.Context, result *domain.UploadResult) {
	c.JSON(http.StatusOK, UploadResponse{OK: true, FileID: result.FileID, Name: result.Name})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// RespondUploadFailed sends a 500 carrying the backend's message.
func RespondUploadFailed(c *gin.Context, details string) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Upload failed", Details: details})
}

// MapDomainError translates client-side domain errors to a status and message.
// ok is false for errors that should be reported as upload failures.
func MapDomainError(err error) (status int, msg string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "No photo uploaded", true
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, "Photo exceeds the 8 MiB limit", true
	case errors.Is(err, domain.ErrRequestTooLarge):
		return http.StatusBadRequest, "Request body exceeds the 8 MiB photo limit plus 64 KiB of form data", true
	case errors.Is(err, domain.ErrUnexpectedFile):
		return http.StatusBadRequest, "Exactly one photo file is allowed", true
	default:
		return 0, "", false
	}
}

// HandleError maps err and sends the appropriate error response. Anything not
// recognised as a client error is an upload failure.
func HandleError(c *gin.Context, log logrus.FieldLogger, err error) {
	if status, msg, ok := MapDomainError(err); ok {
		RespondError(c, status, msg)
		return
	}

	details := err.Error()
	var storageErr *domain.StorageError
	if errors.As(err, &storageErr) {
		details = storageErr.Message
	}
	log.WithField("request_id", middleware.GetRequestID(c)).WithError(err).Error("upload failed")
	RespondUploadFailed(c, details)
}
