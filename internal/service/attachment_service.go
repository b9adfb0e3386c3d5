package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/events"
	"github.com/soporteit/helpdesk-service/internal/repository"
	"github.com/soporteit/helpdesk-service/internal/storage"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

const (
	// MaxAttachmentBytes is the upload size ceiling (10 MiB).
	MaxAttachmentBytes int64 = 10 << 20
	// MaxBatchFiles bounds the number of files per upload request.
	MaxBatchFiles = 5
)

// allowedMimeTypes gates uploads: common images, PDF, Office documents,
// plain text and a few video formats.
var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"image/svg+xml":   {},
	"application/pdf": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/vnd.ms-excel": {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"text/plain":      {},
	"text/csv":        {},
	"video/mp4":       {},
	"video/webm":      {},
	"video/quicktime": {},
}

var storedNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// AttachmentService gates uploads and persists attachment metadata.
type AttachmentService struct {
	store      repository.Store
	blob       storage.Blob
	dispatcher events.Dispatcher
	now        func() time.Time
}

// AttachmentDependencies bundles collaborators.
type AttachmentDependencies struct {
	Store      repository.Store
	Blob       storage.Blob
	Dispatcher events.Dispatcher
	Clock      func() time.Time
}

// NewAttachmentService constructs the service. Clock defaults to time.Now.
func NewAttachmentService(deps AttachmentDependencies) *AttachmentService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &AttachmentService{
		store:      deps.Store,
		blob:       deps.Blob,
		dispatcher: deps.Dispatcher,
		now:        clock,
	}
}

// UploadInput describes one file in an upload request.
type UploadInput struct {
	FileName string
	MimeType string
	Size     int64
	Content  []byte
}

// UploadResult reports the independent outcome for one file of a batch.
type UploadResult struct {
	FileName   string
	Attachment *domain.Attachment
	Err        error
}

// Validate applies the upload gate without persisting anything.
func Validate(input UploadInput) error {
	mimeType := strings.ToLower(strings.TrimSpace(input.MimeType))
	if _, ok := allowedMimeTypes[mimeType]; !ok {
		return apperrors.NewUnsupportedMediaType(input.MimeType)
	}
	if input.Size > MaxAttachmentBytes {
		return apperrors.NewPayloadTooLarge(input.Size, MaxAttachmentBytes)
	}
	return nil
}

// Upload validates and stores a single file, then records the metadata row
// and an attachment_added audit entry in one transaction.
func (s *AttachmentService) Upload(ctx context.Context, actor *domain.User, ticketID int64, input UploadInput) (*domain.Attachment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	if err := Validate(input); err != nil {
		return nil, err
	}

	ticket, err := s.store.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if actor.Role == domain.RoleClient && ticket.CreatedBy != actor.ID {
		return nil, apperrors.NewForbidden("clients can only attach files to their own tickets")
	}

	storedName := s.storedName(input.FileName)
	path, err := s.blob.Save(ctx, storedName, bytes.NewReader(input.Content))
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	attachment := &domain.Attachment{
		TicketID:     ticket.ID,
		UploadedBy:   actor.ID,
		OriginalName: input.FileName,
		StoredName:   storedName,
		StoragePath:  path,
		StorageType:  s.blob.Type(),
		MimeType:     strings.ToLower(strings.TrimSpace(input.MimeType)),
		SizeBytes:    input.Size,
		IsImage:      domain.IsImageMime(input.MimeType),
	}
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Attachments().Create(ctx, attachment); err != nil {
			return err
		}
		return tx.History().Create(ctx, &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionAttachmentAdded,
			NewValue: attachment.OriginalName,
		})
	})
	if err != nil {
		// keep metadata and binary consistent on failure
		_ = s.blob.Remove(ctx, path)
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTicketAttachmentAdded,
			TicketID:  ticket.ID,
			Actor:     eventActor(actor),
			Timestamp: s.now(),
			Payload: events.TicketAttachmentAddedPayload{
				AttachmentID: attachment.ID,
				FileName:     attachment.OriginalName,
				MimeType:     attachment.MimeType,
				SizeBytes:    attachment.SizeBytes,
			},
		})
	}
	return attachment, nil
}

// UploadBatch applies the validator independently per file. One rejected file
// never drops or corrupts the others; each outcome is reported individually.
func (s *AttachmentService) UploadBatch(ctx context.Context, actor *domain.User, ticketID int64, inputs []UploadInput) ([]UploadResult, error) {
	if len(inputs) == 0 {
		return nil, apperrors.NewValidationError("no files provided", nil)
	}
	if len(inputs) > MaxBatchFiles {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("at most %d files per request", MaxBatchFiles),
			map[string]any{"file_count": len(inputs)})
	}

	results := make([]UploadResult, 0, len(inputs))
	for _, input := range inputs {
		attachment, err := s.Upload(ctx, actor, ticketID, input)
		results = append(results, UploadResult{
			FileName:   input.FileName,
			Attachment: attachment,
			Err:        err,
		})
	}
	return results, nil
}

// Delete soft-deletes the metadata row and removes the binary through the
// same path.
func (s *AttachmentService) Delete(ctx context.Context, actor *domain.User, attachmentID int64) error {
	if actor == nil {
		return apperrors.NewUnauthorized("actor required")
	}
	attachment, err := s.store.Attachments().GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attachment", map[string]any{"attachment_id": attachmentID})
		}
		return apperrors.MapError(err)
	}
	if actor.Role != domain.RoleAdmin && attachment.UploadedBy != actor.ID {
		return apperrors.NewForbidden("not allowed to delete this attachment")
	}
	if err := s.store.Attachments().SoftDelete(ctx, attachmentID, actor.ID, s.now()); err != nil {
		return apperrors.MapError(err)
	}
	if attachment.StorageType == domain.StorageLocal {
		if err := s.blob.Remove(ctx, attachment.StoragePath); err != nil {
			return apperrors.NewInternalError(err)
		}
	}
	return nil
}

// storedName builds a collision-resistant filename: timestamp, random
// suffix, then the sanitized original restricted to [A-Za-z0-9._-].
func (s *AttachmentService) storedName(original string) string {
	sanitized := storedNameSanitizer.ReplaceAllString(original, "_")
	sanitized = strings.Trim(sanitized, "._-")
	if sanitized == "" {
		sanitized = "archivo"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s_%s", s.now().UnixMilli(), suffix, sanitized)
}
