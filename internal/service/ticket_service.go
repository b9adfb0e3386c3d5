package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/repository"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

// TicketService serves the read side: listings, detail views and history.
type TicketService struct {
	store repository.Store
}

// NewTicketService constructs the service.
func NewTicketService(store repository.Store) *TicketService {
	return &TicketService{store: store}
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Statuses    []domain.Status
	Priorities  []domain.Priority
	CategoryID  *int64
	AssignedTo  *int64
	Unassigned  bool
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// TicketDetail aggregates a ticket with its thread and audit trail.
type TicketDetail struct {
	Ticket      *domain.Ticket
	Comments    []domain.Comment
	Attachments []domain.Attachment
	History     []domain.TicketHistory
}

// List returns tickets visible to the actor. Clients only ever see their own
// tickets; technicians see their queue plus unassigned work; admins see all.
func (s *TicketService) List(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	repoFilter := repository.TicketFilter{
		Statuses:    filter.Statuses,
		Priorities:  filter.Priorities,
		CategoryID:  filter.CategoryID,
		AssignedTo:  filter.AssignedTo,
		Unassigned:  filter.Unassigned,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if actor.Role == domain.RoleClient {
		repoFilter.CreatedBy = &actor.ID
		repoFilter.AssignedTo = nil
		repoFilter.Unassigned = false
	}
	tickets, err := s.store.Tickets().ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Get returns the full detail for one ticket, enforcing visibility. Internal
// comments are hidden from the client contact.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, ticketID int64) (*TicketDetail, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	ticket, err := s.store.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	if !canView(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}

	includeInternal := actor.Role != domain.RoleClient
	comments, err := s.store.Comments().ListByTicket(ctx, ticket.ID, includeInternal)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	attachments, err := s.store.Attachments().ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	history, err := s.store.History().ListByTicket(ctx, ticket.ID, 200, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &TicketDetail{
		Ticket:      ticket,
		Comments:    comments,
		Attachments: attachments,
		History:     history,
	}, nil
}

// GetByNumber resolves a ticket by its human-facing identifier.
func (s *TicketService) GetByNumber(ctx context.Context, actor *domain.User, number string) (*TicketDetail, error) {
	if _, _, _, err := domain.ParseTicketNumber(number); err != nil {
		return nil, apperrors.NewValidationError("malformed ticket number", map[string]any{"ticket_number": number})
	}
	ticket, err := s.store.Tickets().GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": number})
		}
		return nil, apperrors.MapError(err)
	}
	return s.Get(ctx, actor, ticket.ID)
}

// History returns the audit trail for a ticket, newest last.
func (s *TicketService) History(ctx context.Context, actor *domain.User, ticketID int64, limit, offset int) ([]domain.TicketHistory, error) {
	detail, err := s.Get(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if limit > 0 || offset > 0 {
		return s.store.History().ListByTicket(ctx, detail.Ticket.ID, limit, offset)
	}
	return detail.History, nil
}

func canView(actor *domain.User, ticket *domain.Ticket) bool {
	switch actor.Role {
	case domain.RoleAdmin, domain.RoleTechnician:
		return true
	case domain.RoleClient:
		return ticket.CreatedBy == actor.ID
	}
	return false
}
