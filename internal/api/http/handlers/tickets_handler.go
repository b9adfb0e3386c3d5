package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/soporteit/helpdesk-service/internal/api/dto"
	"github.com/soporteit/helpdesk-service/internal/auth"
	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/service"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

// TicketsHandler exposes ticket CRUD and the lifecycle action endpoints.
type TicketsHandler struct {
	lifecycle *service.LifecycleService
	tickets   *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(lifecycle *service.LifecycleService, tickets *service.TicketService) *TicketsHandler {
	return &TicketsHandler{lifecycle: lifecycle, tickets: tickets}
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.lifecycle.Create(c.UserContext(), actor, service.CreateTicketInput{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Priority:      domain.Priority(req.Priority),
		ClientCompany: req.ClientCompany,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	filter, err := parseTicketListQuery(c)
	if err != nil {
		return err
	}
	tickets, err := h.tickets.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketListResponse(tickets)})
}

// Get GET /tickets/:id.
func (h *TicketsHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.tickets.Get(c.UserContext(), actor, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(detail)})
}

// GetByNumber GET /tickets/number/:number.
func (h *TicketsHandler) GetByNumber(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	detail, err := h.tickets.GetByNumber(c.UserContext(), actor, c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(detail)})
}

// History GET /tickets/:id/history.
func (h *TicketsHandler) History(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)
	history, err := h.tickets.History(c.UserContext(), actor, ticketID, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.HistoryResponse, 0, len(history))
	for i := range history {
		items = append(items, dto.NewHistoryResponse(&history[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Assign POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID == 0 {
		req.TechnicianID = actor.ID
	}
	ticket, err := h.lifecycle.Assign(c.UserContext(), actor, ticketID, req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Accept POST /tickets/:id/accept.
func (h *TicketsHandler) Accept(c *fiber.Ctx) error {
	return h.simpleAction(c, h.lifecycle.Accept)
}

// Reject POST /tickets/:id/reject.
func (h *TicketsHandler) Reject(c *fiber.Ctx) error {
	return h.reasonAction(c, h.lifecycle.Reject)
}

// Resolve POST /tickets/:id/resolve.
func (h *TicketsHandler) Resolve(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ResolveTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.lifecycle.Resolve(c.UserContext(), actor, ticketID, req.Solution)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

// Close POST /tickets/:id/close.
func (h *TicketsHandler) Close(c *fiber.Ctx) error {
	return h.simpleAction(c, h.lifecycle.Close)
}

// Reopen POST /tickets/:id/reopen.
func (h *TicketsHandler) Reopen(c *fiber.Ctx) error {
	return h.reasonAction(c, h.lifecycle.Reopen)
}

// MarkPendingClient POST /tickets/:id/pending-client.
func (h *TicketsHandler) MarkPendingClient(c *fiber.Ctx) error {
	return h.simpleAction(c, h.lifecycle.MarkPendingClient)
}

// ResumeWork POST /tickets/:id/resume.
func (h *TicketsHandler) ResumeWork(c *fiber.Ctx) error {
	return h.simpleAction(c, h.lifecycle.ResumeWork)
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.lifecycle.AddComment(c.UserContext(), actor, ticketID, req.Body, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// Delete DELETE /tickets/:id.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.lifecycle.SoftDelete(c.UserContext(), actor, ticketID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type ticketAction func(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error)

type ticketReasonAction func(ctx context.Context, actor *domain.User, ticketID int64, reason string) (*domain.Ticket, error)

func (h *TicketsHandler) simpleAction(c *fiber.Ctx, action ticketAction) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	ticket, err := action(c.UserContext(), actor, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

func (h *TicketsHandler) reasonAction(c *fiber.Ctx, action ticketReasonAction) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return err
	}
	ticketID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ReasonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := action(c.UserContext(), actor, ticketID, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(ticket)})
}

func actorFromContext(c *fiber.Ctx) (*domain.User, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal.User, nil
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id parameter", map[string]any{name: c.Params(name)})
	}
	return id, nil
}

func parseTicketListQuery(c *fiber.Ctx) (service.TicketListFilter, error) {
	filter := service.TicketListFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	for _, raw := range splitCSV(c.Query("status")) {
		code, err := strconv.Atoi(raw)
		if err != nil || !domain.Status(code).IsValid() {
			return filter, apperrors.NewValidationError("invalid status filter", map[string]any{"status": raw})
		}
		filter.Statuses = append(filter.Statuses, domain.Status(code))
	}
	for _, raw := range splitCSV(c.Query("priority")) {
		code, err := strconv.Atoi(raw)
		if err != nil || !domain.Priority(code).IsValid() {
			return filter, apperrors.NewValidationError("invalid priority filter", map[string]any{"priority": raw})
		}
		filter.Priorities = append(filter.Priorities, domain.Priority(code))
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid category filter", map[string]any{"category_id": raw})
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("assigned_to"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid assignee filter", map[string]any{"assigned_to": raw})
		}
		filter.AssignedTo = &id
	}
	filter.Unassigned = c.QueryBool("unassigned", false)

	if raw := strings.TrimSpace(c.Query("q")); raw != "" {
		filter.SearchTerm = &raw
	}
	if raw := c.Query("created_from"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid created_from filter", map[string]any{"created_from": raw})
		}
		filter.CreatedFrom = &ts
	}
	if raw := c.Query("created_to"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.NewValidationError("invalid created_to filter", map[string]any{"created_to": raw})
		}
		filter.CreatedTo = &ts
	}
	return filter, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
