package domain

import "time"

// Comment is a ticket-scoped message. Internal comments are hidden from the
// ticket's client contact. Comments soft-delete independently of the ticket.
type Comment struct {
	ID         int64
	TicketID   int64
	UserID     int64
	Body       string
	IsInternal bool
	CreatedAt  time.Time
	DeletedAt  *time.Time
	DeletedBy  *int64
}
