package domain

import (
	"math"
	"time"
)

// Ticket is the aggregate for support requests. The lifecycle timestamps are
// each set at most once and are non-decreasing in declaration order.
type Ticket struct {
	ID           int64
	TicketNumber string
	Title        string
	Description  string
	CategoryID   int64
	Priority     Priority
	Status       Status

	CreatedBy  int64
	AssignedTo *int64
	AssignedBy *int64

	CreatedAt       time.Time
	AssignedAt      *time.Time
	AcceptedAt      *time.Time
	FirstResponseAt *time.Time
	ResolvedAt      *time.Time
	ClosedAt        *time.Time
	UpdatedAt       time.Time

	ResolutionTimeHours *float64
	SLABreach           bool

	// Client contact metadata, opaque to the lifecycle engine.
	ClientCompany string
	ClientEmail   string
	ClientPhone   string

	DeletedAt *time.Time
	DeletedBy *int64
}

// IsAssignedTo reports whether the given user is the current assignee.
func (t *Ticket) IsAssignedTo(userID int64) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}

// IsDeleted reports whether the ticket has been soft-deleted.
func (t *Ticket) IsDeleted() bool {
	return t.DeletedAt != nil
}

// ResolutionHours computes the elapsed hours between creation and the given
// resolution instant, rounded to 2 decimals.
func (t *Ticket) ResolutionHours(resolvedAt time.Time) float64 {
	hours := resolvedAt.Sub(t.CreatedAt).Hours()
	return math.Round(hours*100) / 100
}
