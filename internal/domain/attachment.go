package domain

import (
	"strings"
	"time"
)

// StorageType discriminates where the attachment binary lives.
type StorageType string

const (
	StorageLocal    StorageType = "local"
	StorageExternal StorageType = "external"
)

// Attachment is the metadata row for an uploaded file. The binary and the
// metadata are independent resources reachable from the same delete path.
type Attachment struct {
	ID           int64
	TicketID     int64
	UploadedBy   int64
	OriginalName string
	StoredName   string
	StoragePath  string
	StorageType  StorageType
	MimeType     string
	SizeBytes    int64
	IsImage      bool
	CreatedAt    time.Time
	DeletedAt    *time.Time
	DeletedBy    *int64
}

// IsImageMime reports whether the MIME type denotes an image.
func IsImageMime(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}
