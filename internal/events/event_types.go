package events

import (
	"time"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketAssigned        EventType = "ticket_assigned"
	EventTicketCommentAdded    EventType = "ticket_comment_added"
	EventTicketAttachmentAdded EventType = "ticket_attachment_added"
	EventTicketSLABreached     EventType = "ticket_sla_breached"
)

// Actor encapsulates the acting user for an event.
type Actor struct {
	UserID int64       `json:"user_id"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  int64     `json:"ticket_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string          `json:"ticket_number"`
	CategoryID   int64           `json:"category_id"`
	Priority     domain.Priority `json:"priority"`
	Title        string          `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
	Reason    string        `json:"reason,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedTo int64 `json:"assigned_to"`
	AssignedBy int64 `json:"assigned_by"`
	Reassigned bool  `json:"reassigned"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID  int64  `json:"comment_id"`
	IsInternal bool   `json:"is_internal"`
	Preview    string `json:"preview"`
}

// TicketAttachmentAddedPayload payload.
type TicketAttachmentAddedPayload struct {
	AttachmentID int64  `json:"attachment_id"`
	FileName     string `json:"file_name"`
	MimeType     string `json:"mime_type"`
	SizeBytes    int64  `json:"size_bytes"`
}

// TicketSLABreachedPayload payload.
type TicketSLABreachedPayload struct {
	Priority            domain.Priority `json:"priority"`
	SLAHours            float64         `json:"sla_hours"`
	ResolutionTimeHours float64         `json:"resolution_time_hours"`
}
