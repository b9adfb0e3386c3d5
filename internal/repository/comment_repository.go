package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// CommentRepository persists ticket comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	ListByTicket(ctx context.Context, ticketID int64, includeInternal bool) ([]domain.Comment, error)
	SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error
	SoftDeleteByTicket(ctx context.Context, ticketID, deletedBy int64, at time.Time) error
}

type commentRepository struct {
	db DB
}

// NewCommentRepository builds repository.
func NewCommentRepository(db DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO comments (ticket_id, user_id, body, is_internal)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		comment.TicketID,
		comment.UserID,
		comment.Body,
		comment.IsInternal,
	).Scan(&comment.ID, &comment.CreatedAt)
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	const query = `
        SELECT id, ticket_id, user_id, body, is_internal, created_at
        FROM comments WHERE id=$1 AND deleted_at IS NULL`
	var comment domain.Comment
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.TicketID,
		&comment.UserID,
		&comment.Body,
		&comment.IsInternal,
		&comment.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64, includeInternal bool) ([]domain.Comment, error) {
	query := `
        SELECT id, ticket_id, user_id, body, is_internal, created_at
        FROM comments WHERE ticket_id=$1 AND deleted_at IS NULL`
	if !includeInternal {
		query += ` AND is_internal=FALSE`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.TicketID,
			&comment.UserID,
			&comment.Body,
			&comment.IsInternal,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}

func (r *commentRepository) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	const query = `UPDATE comments SET deleted_at=$1, deleted_by=$2
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

func (r *commentRepository) SoftDeleteByTicket(ctx context.Context, ticketID, deletedBy int64, at time.Time) error {
	const query = `UPDATE comments SET deleted_at=$1, deleted_by=$2
        WHERE ticket_id=$3 AND deleted_at IS NULL`
	_, err := r.db.Exec(ctx, query, at, deletedBy, ticketID)
	return err
}
