package dto

import (
	"time"

	"github.com/soporteit/helpdesk-service/internal/domain"
	"github.com/soporteit/helpdesk-service/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CategoryID    int64  `json:"category_id"`
	Priority      int    `json:"priority"`
	ClientCompany string `json:"client_company"`
	ClientEmail   string `json:"client_email"`
	ClientPhone   string `json:"client_phone"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TechnicianID int64 `json:"technician_id"`
}

// ReasonRequest carries the mandatory free-text reason for reject and reopen.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// ResolveTicketRequest payload.
type ResolveTicketRequest struct {
	Solution string `json:"solution"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Body       string `json:"body"`
	IsInternal bool   `json:"is_internal"`
}

// TicketResponse is the wire shape of one ticket.
type TicketResponse struct {
	ID                  int64      `json:"id"`
	TicketNumber        string     `json:"ticket_number"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	CategoryID          int64      `json:"category_id"`
	Priority            int        `json:"priority"`
	PriorityName        string     `json:"priority_name"`
	Status              int        `json:"status"`
	StatusName          string     `json:"status_name"`
	CreatedBy           int64      `json:"created_by"`
	AssignedTo          *int64     `json:"assigned_to"`
	AssignedBy          *int64     `json:"assigned_by"`
	CreatedAt           time.Time  `json:"created_at"`
	AssignedAt          *time.Time `json:"assigned_at"`
	AcceptedAt          *time.Time `json:"accepted_at"`
	FirstResponseAt     *time.Time `json:"first_response_at"`
	ResolvedAt          *time.Time `json:"resolved_at"`
	ClosedAt            *time.Time `json:"closed_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
	ResolutionTimeHours *float64   `json:"resolution_time_hours"`
	SLABreach           bool       `json:"sla_breach"`
	ClientCompany       string     `json:"client_company,omitempty"`
	ClientEmail         string     `json:"client_email,omitempty"`
	ClientPhone         string     `json:"client_phone,omitempty"`
}

// CommentResponse is the wire shape of one comment.
type CommentResponse struct {
	ID         int64     `json:"id"`
	TicketID   int64     `json:"ticket_id"`
	UserID     int64     `json:"user_id"`
	Body       string    `json:"body"`
	IsInternal bool      `json:"is_internal"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryResponse is one audit trail entry.
type HistoryResponse struct {
	ID        int64     `json:"id"`
	TicketID  int64     `json:"ticket_id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	OldValue  string    `json:"old_value,omitempty"`
	NewValue  string    `json:"new_value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketDetailResponse aggregates a ticket with thread and audit trail.
type TicketDetailResponse struct {
	Ticket      TicketResponse       `json:"ticket"`
	Comments    []CommentResponse    `json:"comments"`
	Attachments []AttachmentResponse `json:"attachments"`
	History     []HistoryResponse    `json:"history"`
}

// NewTicketResponse maps the domain ticket to the wire shape.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                  t.ID,
		TicketNumber:        t.TicketNumber,
		Title:               t.Title,
		Description:         t.Description,
		CategoryID:          t.CategoryID,
		Priority:            int(t.Priority),
		PriorityName:        t.Priority.Name(),
		Status:              int(t.Status),
		StatusName:          t.Status.Name(),
		CreatedBy:           t.CreatedBy,
		AssignedTo:          t.AssignedTo,
		AssignedBy:          t.AssignedBy,
		CreatedAt:           t.CreatedAt,
		AssignedAt:          t.AssignedAt,
		AcceptedAt:          t.AcceptedAt,
		FirstResponseAt:     t.FirstResponseAt,
		ResolvedAt:          t.ResolvedAt,
		ClosedAt:            t.ClosedAt,
		UpdatedAt:           t.UpdatedAt,
		ResolutionTimeHours: t.ResolutionTimeHours,
		SLABreach:           t.SLABreach,
		ClientCompany:       t.ClientCompany,
		ClientEmail:         t.ClientEmail,
		ClientPhone:         t.ClientPhone,
	}
}

// NewTicketListResponse maps a slice of tickets.
func NewTicketListResponse(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for i := range tickets {
		out = append(out, NewTicketResponse(&tickets[i]))
	}
	return out
}

// NewCommentResponse maps a comment.
func NewCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		TicketID:   c.TicketID,
		UserID:     c.UserID,
		Body:       c.Body,
		IsInternal: c.IsInternal,
		CreatedAt:  c.CreatedAt,
	}
}

// NewHistoryResponse maps an audit entry.
func NewHistoryResponse(h *domain.TicketHistory) HistoryResponse {
	return HistoryResponse{
		ID:        h.ID,
		TicketID:  h.TicketID,
		UserID:    h.UserID,
		Action:    string(h.Action),
		OldValue:  h.OldValue,
		NewValue:  h.NewValue,
		CreatedAt: h.CreatedAt,
	}
}

// NewTicketDetailResponse maps the full detail aggregate.
func NewTicketDetailResponse(detail *service.TicketDetail) TicketDetailResponse {
	out := TicketDetailResponse{
		Ticket:      NewTicketResponse(detail.Ticket),
		Comments:    make([]CommentResponse, 0, len(detail.Comments)),
		Attachments: make([]AttachmentResponse, 0, len(detail.Attachments)),
		History:     make([]HistoryResponse, 0, len(detail.History)),
	}
	for i := range detail.Comments {
		out.Comments = append(out.Comments, NewCommentResponse(&detail.Comments[i]))
	}
	for i := range detail.Attachments {
		out.Attachments = append(out.Attachments, NewAttachmentResponse(&detail.Attachments[i]))
	}
	for i := range detail.History {
		out.History = append(out.History, NewHistoryResponse(&detail.History[i]))
	}
	return out
}
