package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// CategoryRepository persists the category catalog.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error
}

type categoryRepository struct {
	db DB
}

// NewCategoryRepository builds repository.
func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	const query = `
        INSERT INTO categories (name, description, active)
        VALUES ($1,$2,$3)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		category.Name,
		category.Description,
		category.Active,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	const query = `UPDATE categories SET name=$1, description=$2, active=$3, updated_at=NOW()
        WHERE id=$4 AND deleted_at IS NULL`
	cmd, err := r.db.Exec(ctx, query, category.Name, category.Description, category.Active, category.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	const query = `SELECT id, name, description, active, created_at, updated_at
        FROM categories WHERE id=$1 AND deleted_at IS NULL`
	var category domain.Category
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Active,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	const query = `SELECT id, name, description, active, created_at, updated_at
        FROM categories WHERE deleted_at IS NULL ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Description,
			&category.Active,
			&category.CreatedAt,
			&category.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, rows.Err()
}

func (r *categoryRepository) SoftDelete(ctx context.Context, id, deletedBy int64, at time.Time) error {
	const query = `UPDATE categories SET deleted_at=$1, deleted_by=$2, active=FALSE, updated_at=NOW()
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
