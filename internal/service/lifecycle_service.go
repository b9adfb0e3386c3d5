package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/events"
	"github.com/soporteit/helpdesk-service/internal/repository"
	apperrors "github.com/soporteit/helpdesk-service/pkg/util"
)

// ticket-number allocation retries on a unique-constraint race before the
// creation is reported as a conflict
const maxNumberRetries = 3

// LifecycleService owns ticket creation, numbering, status transitions and
// the audit trail. Every multi-step transition runs inside a single
// transaction so partial application is impossible.
type LifecycleService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	now        func() time.Time
}

// LifecycleDependencies bundles collaborators for the lifecycle engine.
type LifecycleDependencies struct {
	Store      repository.Store
	Dispatcher events.Dispatcher
	Clock      func() time.Time
}

// NewLifecycleService constructs the engine. Clock defaults to time.Now.
func NewLifecycleService(deps LifecycleDependencies) *LifecycleService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &LifecycleService{
		store:      deps.Store,
		dispatcher: deps.Dispatcher,
		now:        clock,
	}
}

// CreateTicketInput describes ticket creation payload.
type CreateTicketInput struct {
	Title         string
	Description   string
	CategoryID    int64
	Priority      domain.Priority
	ClientCompany string
	ClientEmail   string
	ClientPhone   string
}

// Create allocates a ticket number for the current year-month bucket and
// inserts the ticket in status Nuevo. Number allocation is serialized by the
// database; a unique-constraint race retries with a fresh number.
func (s *LifecycleService) Create(ctx context.Context, actor *domain.User, input CreateTicketInput) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" || input.Description == "" {
		return nil, apperrors.NewValidationError("title and description are required", nil)
	}
	if input.Priority == 0 {
		input.Priority = domain.PriorityMedia
	}
	if !input.Priority.IsValid() {
		return nil, apperrors.NewValidationError("invalid priority", map[string]any{"priority": input.Priority})
	}

	category, err := s.store.Categories().GetByID(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}
	if !category.Active {
		return nil, apperrors.NewValidationError("category inactive", map[string]any{"category_id": category.ID})
	}

	var ticket *domain.Ticket
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		ticket, err = s.createOnce(ctx, actor, input)
		if err == nil {
			break
		}
		if repository.IsUniqueViolation(err) {
			continue
		}
		return nil, apperrors.MapError(err)
	}
	if err != nil {
		return nil, apperrors.NewConflict("could not allocate a unique ticket number", nil)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			CategoryID:   ticket.CategoryID,
			Priority:     ticket.Priority,
			Title:        ticket.Title,
		},
	})
	return ticket, nil
}

func (s *LifecycleService) createOnce(ctx context.Context, actor *domain.User, input CreateTicketInput) (*domain.Ticket, error) {
	now := s.now()

	// The counter advances in its own committed statement, outside the
	// insert transaction. A rolled-back insert must not rewind the counter,
	// otherwise every retry would recompute the same colliding number.
	seq, err := s.store.Sequences().Next(ctx, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		TicketNumber:  domain.FormatTicketNumber(now.Year(), now.Month(), seq),
		Title:         input.Title,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		Priority:      input.Priority,
		Status:        domain.StatusNuevo,
		CreatedBy:     actor.ID,
		ClientCompany: input.ClientCompany,
		ClientEmail:   input.ClientEmail,
		ClientPhone:   input.ClientPhone,
	}
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return err
		}
		return tx.History().Create(ctx, &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionCreated,
			NewValue: ticket.TicketNumber,
		})
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// Assign routes the ticket to a technician. Administrators assign anyone;
// technicians may only take the ticket themselves. A ticket in Cerrado cannot
// be assigned.
func (s *LifecycleService) Assign(ctx context.Context, actor *domain.User, ticketID, technicianID int64) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleTechnician:
		if technicianID != actor.ID {
			return nil, apperrors.NewForbidden("technicians can only self-assign")
		}
	case domain.RoleClient:
		return nil, apperrors.NewForbidden("clients cannot assign tickets")
	}

	technician, err := s.store.Users().GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("technician", map[string]any{"user_id": technicianID})
		}
		return nil, apperrors.MapError(err)
	}
	if technician.Role != domain.RoleTechnician && technician.Role != domain.RoleAdmin {
		return nil, apperrors.NewValidationError("assignee is not a technician", map[string]any{"user_id": technicianID})
	}
	if !technician.Active {
		return nil, apperrors.NewConflict("assignee inactive", map[string]any{"user_id": technicianID})
	}

	var (
		ticket     *domain.Ticket
		reassigned bool
	)
	err = s.store.WithinTx(ctx, func(tx repository.Store) error {
		ticket, err = s.loadTicket(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if ticket.Status == domain.StatusCerrado {
			return apperrors.NewInvalidTransition("cannot assign a closed ticket", transitionDetails(ticket.Status, domain.StatusAsignado))
		}
		now := s.now()
		reassigned = ticket.AssignedTo != nil
		oldAssignee := ticket.AssignedTo
		oldStatus := ticket.Status

		ticket.AssignedTo = &technician.ID
		ticket.AssignedBy = &actor.ID
		if ticket.AssignedAt == nil {
			ticket.AssignedAt = &now
		}
		if ticket.Status == domain.StatusNuevo {
			ticket.Status = domain.StatusAsignado
		}
		if err := tx.Tickets().Update(ctx, ticket); err != nil {
			return err
		}

		entry := &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
		}
		if ticket.Status != oldStatus {
			entry.Action = domain.ActionAssigned
			entry.OldValue = oldStatus.Name()
			entry.NewValue = ticket.Status.Name()
		} else if reassigned {
			entry.Action = domain.ActionReassigned
			entry.OldValue = fmt.Sprintf("%d", *oldAssignee)
			entry.NewValue = fmt.Sprintf("%d", technician.ID)
		} else {
			entry.Action = domain.ActionAssigned
			entry.NewValue = fmt.Sprintf("%d", technician.ID)
		}
		return tx.History().Create(ctx, entry)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketAssignedPayload{
			AssignedTo: technician.ID,
			AssignedBy: actor.ID,
			Reassigned: reassigned,
		},
	})
	return ticket, nil
}

// Accept lets the assigned technician take the ticket into work. Valid only
// from Asignado and only for the assignee.
func (s *LifecycleService) Accept(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	return s.transition(ctx, actor, ticketID, func(ticket *domain.Ticket, now time.Time) (*domain.TicketHistory, error) {
		if !ticket.IsAssignedTo(actor.ID) {
			return nil, apperrors.NewForbidden("only the assigned technician can accept")
		}
		if ticket.Status != domain.StatusAsignado {
			return nil, apperrors.NewInvalidTransition("ticket can only be accepted while assigned", transitionDetails(ticket.Status, domain.StatusEnProceso))
		}
		oldStatus := ticket.Status
		ticket.Status = domain.StatusEnProceso
		if ticket.AcceptedAt == nil {
			ticket.AcceptedAt = &now
		}
		return &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionStatusChanged,
			OldValue: oldStatus.Name(),
			NewValue: ticket.Status.Name(),
		}, nil
	})
}

// Reject lets the assigned technician decline the ticket. The ticket returns
// to Nuevo unassigned so it can be routed again; the reason lands in the
// audit trail.
func (s *LifecycleService) Reject(ctx context.Context, actor *domain.User, ticketID int64, reason string) (*domain.Ticket, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("rejection reason is required", nil)
	}
	return s.transition(ctx, actor, ticketID, func(ticket *domain.Ticket, now time.Time) (*domain.TicketHistory, error) {
		if !ticket.IsAssignedTo(actor.ID) {
			return nil, apperrors.NewForbidden("only the assigned technician can reject")
		}
		if ticket.Status != domain.StatusAsignado {
			return nil, apperrors.NewInvalidTransition("ticket can only be rejected while assigned", transitionDetails(ticket.Status, domain.StatusNuevo))
		}
		oldStatus := ticket.Status
		ticket.Status = domain.StatusNuevo
		ticket.AssignedTo = nil
		ticket.AssignedBy = nil
		return &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionStatusChanged,
			OldValue: oldStatus.Name(),
			NewValue: fmt.Sprintf("%s (motivo: %s)", ticket.Status.Name(), reason),
		}, nil
	})
}

// Resolve marks the ticket solved. The resolution metrics are computed
// exactly once, the instant ResolvedAt transitions from unset to set.
func (s *LifecycleService) Resolve(ctx context.Context, actor *domain.User, ticketID int64, solution string) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	solution = strings.TrimSpace(solution)
	if solution == "" {
		return nil, apperrors.NewValidationError("solution description is required", nil)
	}

	var (
		ticket    *domain.Ticket
		oldStatus domain.Status
		breach    bool
		metrics   events.TicketSLABreachedPayload
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		ticket, err = s.loadTicket(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if actor.Role != domain.RoleAdmin && !ticket.IsAssignedTo(actor.ID) {
			return apperrors.NewForbidden("only the assignee or an admin can resolve")
		}
		if ticket.Status != domain.StatusEnProceso && ticket.Status != domain.StatusPendienteCliente {
			return apperrors.NewInvalidTransition("ticket cannot be resolved from its current status", transitionDetails(ticket.Status, domain.StatusResuelto))
		}

		now := s.now()
		oldStatus = ticket.Status
		ticket.Status = domain.StatusResuelto
		if ticket.ResolvedAt == nil {
			ticket.ResolvedAt = &now
			hours := ticket.ResolutionHours(now)
			ticket.ResolutionTimeHours = &hours
			ticket.SLABreach = hours > ticket.Priority.SLAHours()
		}
		breach = ticket.SLABreach

		if err := tx.Tickets().Update(ctx, ticket); err != nil {
			return err
		}
		if err := tx.Comments().Create(ctx, &domain.Comment{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Body:     solution,
		}); err != nil {
			return err
		}
		if err := tx.History().Create(ctx, &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionStatusChanged,
			OldValue: oldStatus.Name(),
			NewValue: ticket.Status.Name(),
		}); err != nil {
			return err
		}
		if breach {
			metrics = events.TicketSLABreachedPayload{
				Priority:            ticket.Priority,
				SLAHours:            ticket.Priority.SLAHours(),
				ResolutionTimeHours: *ticket.ResolutionTimeHours,
			}
			return tx.History().Create(ctx, &domain.TicketHistory{
				TicketID: ticket.ID,
				UserID:   actor.ID,
				Action:   domain.ActionSLABreach,
				OldValue: fmt.Sprintf("%.2f", ticket.Priority.SLAHours()),
				NewValue: fmt.Sprintf("%.2f", *ticket.ResolutionTimeHours),
			})
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishStatusChange(ctx, actor, ticket, oldStatus, domain.StatusResuelto)
	if breach {
		s.publish(ctx, events.Event{
			Type:     events.EventTicketSLABreached,
			TicketID: ticket.ID,
			Actor:    eventActor(actor),
			Payload:  metrics,
		})
	}
	return ticket, nil
}

// Close finishes the lifecycle. Valid only from Resuelto; Cerrado is
// terminal.
func (s *LifecycleService) Close(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	return s.transition(ctx, actor, ticketID, func(ticket *domain.Ticket, now time.Time) (*domain.TicketHistory, error) {
		if actor.Role != domain.RoleAdmin && actor.ID != ticket.CreatedBy && !ticket.IsAssignedTo(actor.ID) {
			return nil, apperrors.NewForbidden("not allowed to close this ticket")
		}
		if ticket.Status != domain.StatusResuelto {
			return nil, apperrors.NewInvalidTransition("only resolved tickets can be closed", transitionDetails(ticket.Status, domain.StatusCerrado))
		}
		oldStatus := ticket.Status
		ticket.Status = domain.StatusCerrado
		if ticket.ClosedAt == nil {
			ticket.ClosedAt = &now
		}
		return &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionClosed,
			OldValue: oldStatus.Name(),
			NewValue: ticket.Status.Name(),
		}, nil
	})
}

// Reopen reverses a resolution. ResolvedAt/ClosedAt and the computed metrics
// are cleared so a later resolve recomputes them. The ticket lands on
// EnProceso when a technician is still assigned, Asignado otherwise.
func (s *LifecycleService) Reopen(ctx context.Context, actor *domain.User, ticketID int64, reason string) (*domain.Ticket, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reopen reason is required", nil)
	}
	return s.transition(ctx, actor, ticketID, func(ticket *domain.Ticket, now time.Time) (*domain.TicketHistory, error) {
		if actor.Role != domain.RoleAdmin && actor.ID != ticket.CreatedBy && !ticket.IsAssignedTo(actor.ID) {
			return nil, apperrors.NewForbidden("not allowed to reopen this ticket")
		}
		if ticket.Status != domain.StatusResuelto && ticket.Status != domain.StatusCerrado {
			return nil, apperrors.NewInvalidTransition("only resolved or closed tickets can be reopened", transitionDetails(ticket.Status, domain.StatusReabierto))
		}
		oldStatus := ticket.Status
		if ticket.AssignedTo != nil {
			ticket.Status = domain.StatusEnProceso
		} else {
			ticket.Status = domain.StatusAsignado
		}
		ticket.ResolvedAt = nil
		ticket.ClosedAt = nil
		ticket.ResolutionTimeHours = nil
		ticket.SLABreach = false
		return &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionReopened,
			OldValue: oldStatus.Name(),
			NewValue: fmt.Sprintf("%s (motivo: %s)", ticket.Status.Name(), reason),
		}, nil
	})
}

// MarkPendingClient parks the ticket while waiting on the client contact.
func (s *LifecycleService) MarkPendingClient(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	return s.transition(ctx, actor, ticketID, func(ticket *domain.Ticket, now time.Time) (*domain.TicketHistory, error) {
		if actor.Role != domain.RoleAdmin && !ticket.IsAssignedTo(actor.ID) {
			return nil, apperrors.NewForbidden("only the assignee or an admin can update status")
		}
		if !ticket.Status.CanTransitionTo(domain.StatusPendienteCliente) {
			return nil, apperrors.NewInvalidTransition("ticket cannot wait on client from its current status", transitionDetails(ticket.Status, domain.StatusPendienteCliente))
		}
		oldStatus := ticket.Status
		ticket.Status = domain.StatusPendienteCliente
		return &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionStatusChanged,
			OldValue: oldStatus.Name(),
			NewValue: ticket.Status.Name(),
		}, nil
	})
}

// ResumeWork returns a ticket from PendienteCliente to EnProceso.
func (s *LifecycleService) ResumeWork(ctx context.Context, actor *domain.User, ticketID int64) (*domain.Ticket, error) {
	return s.transition(ctx, actor, ticketID, func(ticket *domain.Ticket, now time.Time) (*domain.TicketHistory, error) {
		if actor.Role != domain.RoleAdmin && !ticket.IsAssignedTo(actor.ID) {
			return nil, apperrors.NewForbidden("only the assignee or an admin can update status")
		}
		if ticket.Status != domain.StatusPendienteCliente {
			return nil, apperrors.NewInvalidTransition("ticket is not waiting on the client", transitionDetails(ticket.Status, domain.StatusEnProceso))
		}
		oldStatus := ticket.Status
		ticket.Status = domain.StatusEnProceso
		return &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionStatusChanged,
			OldValue: oldStatus.Name(),
			NewValue: ticket.Status.Name(),
		}, nil
	})
}

// AddComment appends a comment. The first public reply from staff who did not
// open the ticket stamps FirstResponseAt.
func (s *LifecycleService) AddComment(ctx context.Context, actor *domain.User, ticketID int64, body string, isInternal bool) (*domain.Comment, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("comment body is required", nil)
	}
	if isInternal && actor.Role == domain.RoleClient {
		return nil, apperrors.NewForbidden("clients cannot post internal comments")
	}

	var comment *domain.Comment
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		ticket, err := s.loadTicket(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if actor.Role == domain.RoleClient && actor.ID != ticket.CreatedBy {
			return apperrors.NewForbidden("clients can only comment on their own tickets")
		}

		comment = &domain.Comment{
			TicketID:   ticket.ID,
			UserID:     actor.ID,
			Body:       body,
			IsInternal: isInternal,
		}
		if err := tx.Comments().Create(ctx, comment); err != nil {
			return err
		}
		if err := tx.History().Create(ctx, &domain.TicketHistory{
			TicketID: ticket.ID,
			UserID:   actor.ID,
			Action:   domain.ActionCommented,
			NewValue: preview(body, 120),
		}); err != nil {
			return err
		}

		staffReply := actor.Role != domain.RoleClient && !isInternal && actor.ID != ticket.CreatedBy
		if staffReply && ticket.FirstResponseAt == nil {
			now := s.now()
			ticket.FirstResponseAt = &now
			if err := tx.Tickets().Update(ctx, ticket); err != nil {
				return err
			}
			if err := tx.History().Create(ctx, &domain.TicketHistory{
				TicketID: ticket.ID,
				UserID:   actor.ID,
				Action:   domain.ActionFirstResponse,
				NewValue: now.UTC().Format(time.RFC3339),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: comment.TicketID,
		Actor:    eventActor(actor),
		Payload: events.TicketCommentAddedPayload{
			CommentID:  comment.ID,
			IsInternal: comment.IsInternal,
			Preview:    preview(comment.Body, 120),
		},
	})
	return comment, nil
}

// SoftDelete hides the ticket and cascades to its comments and attachments.
// Rows are never physically removed; default queries exclude them.
func (s *LifecycleService) SoftDelete(ctx context.Context, actor *domain.User, ticketID int64) error {
	if actor == nil {
		return apperrors.NewUnauthorized("actor required")
	}
	if actor.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("only admins can delete tickets")
	}
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := s.loadTicket(ctx, tx, ticketID); err != nil {
			return err
		}
		now := s.now()
		if err := tx.Tickets().SoftDelete(ctx, ticketID, actor.ID, now); err != nil {
			return err
		}
		if err := tx.Comments().SoftDeleteByTicket(ctx, ticketID, actor.ID, now); err != nil {
			return err
		}
		return tx.Attachments().SoftDeleteByTicket(ctx, ticketID, actor.ID, now)
	})
	return apperrors.MapError(err)
}

// transition wraps the shared load / mutate / persist / audit sequence. The
// mutate callback validates preconditions, mutates the ticket and returns the
// single history entry for the change.
func (s *LifecycleService) transition(ctx context.Context, actor *domain.User, ticketID int64, mutate func(*domain.Ticket, time.Time) (*domain.TicketHistory, error)) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("actor required")
	}
	var (
		ticket    *domain.Ticket
		oldStatus domain.Status
	)
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		var err error
		ticket, err = s.loadTicket(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		oldStatus = ticket.Status
		entry, err := mutate(ticket, s.now())
		if err != nil {
			return err
		}
		if err := tx.Tickets().Update(ctx, ticket); err != nil {
			return err
		}
		return tx.History().Create(ctx, entry)
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if ticket.Status != oldStatus {
		s.publishStatusChange(ctx, actor, ticket, oldStatus, ticket.Status)
	}
	return ticket, nil
}

func (s *LifecycleService) loadTicket(ctx context.Context, tx repository.Store, ticketID int64) (*domain.Ticket, error) {
	ticket, err := tx.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	return ticket, nil
}

func (s *LifecycleService) publishStatusChange(ctx context.Context, actor *domain.User, ticket *domain.Ticket, oldStatus, newStatus domain.Status) {
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	})
}

func (s *LifecycleService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor *domain.User) events.Actor {
	return events.Actor{UserID: actor.ID, Role: actor.Role}
}

func transitionDetails(from, to domain.Status) map[string]any {
	return map[string]any{
		"from": from.Name(),
		"to":   to.Name(),
	}
}

// preview truncates on rune boundaries so multibyte text stays valid UTF-8.
func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
