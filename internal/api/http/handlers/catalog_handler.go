package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soporteit/helpdesk-service/internal/api/dto"
	"github.com/soporteit/helpdesk-service/internal/service"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

// CatalogHandler exposes the category catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List GET /categories.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	categories, err := h.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryListResponse(categories)})
}

// Create POST /categories.
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.catalog.Create(c.UserContext(), actor, req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// Update PATCH /categories/:id.
func (h *CatalogHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	categoryID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.catalog.Update(c.UserContext(), actor, categoryID, req.Name, req.Description, req.Active)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCategoryResponse(category)})
}

// Delete DELETE /categories/:id.
func (h *CatalogHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	categoryID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.Delete(c.UserContext(), actor, categoryID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
