package dto

import (
	"time"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/service"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

// AttachmentResponse is the wire shape of attachment metadata.
type AttachmentResponse struct {
	ID           int64     `json:"id"`
	TicketID     int64     `json:"ticket_id"`
	UploadedBy   int64     `json:"uploaded_by"`
	OriginalName string    `json:"original_name"`
	StoredName   string    `json:"stored_name"`
	StorageType  string    `json:"storage_type"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	IsImage      bool      `json:"is_image"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadResultResponse reports the per-file outcome of a batch upload.
type UploadResultResponse struct {
	FileName   string              `json:"file_name"`
	Accepted   bool                `json:"accepted"`
	Attachment *AttachmentResponse `json:"attachment,omitempty"`
	Error      *UploadErrorDetail  `json:"error,omitempty"`
}

// UploadErrorDetail describes why a file was rejected.
type UploadErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAttachmentResponse maps attachment metadata.
func NewAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:           a.ID,
		TicketID:     a.TicketID,
		UploadedBy:   a.UploadedBy,
		OriginalName: a.OriginalName,
		StoredName:   a.StoredName,
		StorageType:  string(a.StorageType),
		MimeType:     a.MimeType,
		SizeBytes:    a.SizeBytes,
		IsImage:      a.IsImage,
		CreatedAt:    a.CreatedAt,
	}
}

// NewUploadResultsResponse maps per-file batch outcomes.
func NewUploadResultsResponse(results []service.UploadResult) []UploadResultResponse {
	out := make([]UploadResultResponse, 0, len(results))
	for _, result := range results {
		item := UploadResultResponse{
			FileName: result.FileName,
			Accepted: result.Err == nil,
		}
		if result.Attachment != nil {
			mapped := NewAttachmentResponse(result.Attachment)
			item.Attachment = &mapped
		}
		if result.Err != nil {
			domainErr := apperrors.ToDomainError(result.Err)
			item.Error = &UploadErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			}
		}
		out = append(out, item)
	}
	return out
}
