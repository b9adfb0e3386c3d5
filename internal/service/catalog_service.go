package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/repository"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

// CatalogService manages the category catalog. Writes are admin-only.
type CatalogService struct {
	categories repository.CategoryRepository
}

// NewCatalogService builds the service.
func NewCatalogService(categories repository.CategoryRepository) *CatalogService {
	return &CatalogService{categories: categories}
}

// List returns all catalog entries.
func (s *CatalogService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return categories, nil
}

// Create adds a catalog entry.
func (s *CatalogService) Create(ctx context.Context, actor *domain.User, name, description string) (*domain.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("category name is required", nil)
	}
	category := &domain.Category{
		Name:        name,
		Description: strings.TrimSpace(description),
		Active:      true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Update modifies name, description or the active flag.
func (s *CatalogService) Update(ctx context.Context, actor *domain.User, id int64, name, description *string, active *bool) (*domain.Category, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("category name cannot be empty", nil)
		}
		category.Name = trimmed
	}
	if description != nil {
		category.Description = strings.TrimSpace(*description)
	}
	if active != nil {
		category.Active = *active
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, apperrors.MapError(err)
	}
	return category, nil
}

// Delete soft-deletes a catalog entry. Existing tickets keep their reference.
func (s *CatalogService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("category", map[string]any{"category_id": id})
		}
		return apperrors.MapError(err)
	}
	return apperrors.MapError(s.categories.SoftDelete(ctx, id, actor.ID, time.Now()))
}

func requireAdmin(actor *domain.User) error {
	if actor == nil {
		return apperrors.NewUnauthorized("actor required")
	}
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}
