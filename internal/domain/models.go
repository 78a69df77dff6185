package domain

import "time"

const (
	// MaxPhotoBytes is the largest accepted photo payload.
	MaxPhotoBytes = 8 << 20

	// PhotoMimeType is assigned to every upload. Payload bytes are not sniffed.
	PhotoMimeType = "image/jpeg"

	// PhotoNamePrefix is prepended to the timestamp in generated object names.
	PhotoNamePrefix = "photo_"
)

// UploadRequest is the validated, request-scoped input of one upload.
type UploadRequest struct {
	Data     []byte
	PhoneID  string
	ClientIP string
}

// StorageTarget is where uploads land on the backend. Container is a Drive
// folder id or an S3 bucket, depending on the backend.
type StorageTarget struct {
	Container string
}

// UploadResult is what the backend reports for a stored photo.
type UploadResult struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
}

// Liveness is the body of the root health probe.
type Liveness struct {
	OK  bool   `json:"ok"`
	Now string `json:"now"`
}

// FormatTimestamp renders t as an ISO-8601 UTC string with millisecond
// precision, e.g. 2024-05-01T10:20:30.123Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
