package storage

import (
	"context"
	"io"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// Blob abstracts where attachment binaries live. The metadata row and the
// binary are independent resources; both are reachable from the same delete
// path through this port.
type Blob interface {
	// Save writes the content under storedName and returns the storage path.
	Save(ctx context.Context, storedName string, content io.Reader) (string, error)
	Remove(ctx context.Context, storagePath string) error
	Type() domain.StorageType
}
