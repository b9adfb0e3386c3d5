package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// AttachmentRepository persists attachment metadata rows.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	GetByID(ctx context.Context, id int64) (*domain.Attachment, error)
	ListByTicket(ctx context.Context, ticketID int64) ([]domain.Attachment, error)
	SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error
	SoftDeleteByTicket(ctx context.Context, ticketID, deletedBy int64, at time.Time) error
}

type attachmentRepository struct {
	db DB
}

// NewAttachmentRepository builds repository.
func NewAttachmentRepository(db DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

const attachmentColumns = `id, ticket_id, uploaded_by, original_name, stored_name, storage_path,
       storage_type, mime_type, size_bytes, is_image, created_at`

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO ticket_attachments (ticket_id, uploaded_by, original_name, stored_name,
            storage_path, storage_type, mime_type, size_bytes, is_image)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		attachment.TicketID,
		attachment.UploadedBy,
		attachment.OriginalName,
		attachment.StoredName,
		attachment.StoragePath,
		attachment.StorageType,
		attachment.MimeType,
		attachment.SizeBytes,
		attachment.IsImage,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id int64) (*domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM ticket_attachments WHERE id=$1 AND deleted_at IS NULL`
	var att domain.Attachment
	if err := scanAttachment(r.db.QueryRow(ctx, query, id), &att); err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM ticket_attachments
        WHERE ticket_id=$1 AND deleted_at IS NULL ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Attachment
	for rows.Next() {
		var att domain.Attachment
		if err := scanAttachment(rows, &att); err != nil {
			return nil, err
		}
		result = append(result, att)
	}
	return result, rows.Err()
}

func (r *attachmentRepository) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	const query = `UPDATE ticket_attachments SET deleted_at=$1, deleted_by=$2
        WHERE id=$3 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, at, deletedBy, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *attachmentRepository) SoftDeleteByTicket(ctx context.Context, ticketID, deletedBy int64, at time.Time) error {
	const query = `UPDATE ticket_attachments SET deleted_at=$1, deleted_by=$2
        WHERE ticket_id=$3 AND deleted_at IS NULL`
	_, err := r.db.Exec(ctx, query, at, deletedBy, ticketID)
	return err
}

func scanAttachment(row pgx.Row, att *domain.Attachment) error {
	return row.Scan(
		&att.ID,
		&att.TicketID,
		&att.UploadedBy,
		&att.OriginalName,
		&att.StoredName,
		&att.StoragePath,
		&att.StorageType,
		&att.MimeType,
		&att.SizeBytes,
		&att.IsImage,
		&att.CreatedAt,
	)
}
