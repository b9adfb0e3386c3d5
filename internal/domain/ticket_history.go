package domain

import "time"

// HistoryAction captures what changed in a history entry.
type HistoryAction string

const (
	ActionCreated         HistoryAction = "created"
	ActionStatusChanged   HistoryAction = "status_changed"
	ActionAssigned        HistoryAction = "assigned"
	ActionReassigned      HistoryAction = "reassigned"
	ActionCommented       HistoryAction = "commented"
	ActionAttachmentAdded HistoryAction = "attachment_added"
	ActionReopened        HistoryAction = "reopened"
	ActionClosed          HistoryAction = "closed"
	ActionFirstResponse   HistoryAction = "first_response"
	ActionSLABreach       HistoryAction = "sla_breach"
)

// TicketHistory is an immutable audit trail entry. Rows are never updated or
// deleted after insertion; the trail is the only chronology of past states.
type TicketHistory struct {
	ID        int64
	TicketID  int64
	UserID    int64
	Action    HistoryAction
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}
