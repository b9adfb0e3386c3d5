package domain

import "time"

// Category is a catalog row for ticket classification. Mutated only through
// administrative CRUD.
type Category struct {
	ID          int64
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
	DeletedBy   *int64
}
