package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// External records attachments hosted outside this service. The binary is
// uploaded out-of-band; this adapter only derives the public URL, so Save
// never reads the content and Remove leaves the remote object alone.
type External struct {
	baseURL string
}

// NewExternal builds the adapter for a remote file host.
func NewExternal(baseURL string) (*External, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("external storage base URL required")
	}
	return &External{baseURL: baseURL}, nil
}

func (e *External) Save(ctx context.Context, storedName string, content io.Reader) (string, error) {
	return e.baseURL + "/" + storedName, nil
}

func (e *External) Remove(ctx context.Context, storagePath string) error {
	return nil
}

func (e *External) Type() domain.StorageType {
	return domain.StorageExternal
}
