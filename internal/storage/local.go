package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/soporteit/helpdesk-service/internal/domain"
)

// Local stores attachment binaries on the local filesystem under a base
// directory.
type Local struct {
	baseDir string
}

// NewLocal creates the base directory if needed.
func NewLocal(baseDir string) (*Local, error) {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = "uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{baseDir: baseDir}, nil
}

func (l *Local) Save(ctx context.Context, storedName string, content io.Reader) (string, error) {
	// storedName is already sanitized by the validator; Base guards against
	// path traversal regardless.
	path := filepath.Join(l.baseDir, filepath.Base(storedName))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return path, nil
}

func (l *Local) Remove(ctx context.Context, storagePath string) error {
	clean := filepath.Clean(storagePath)
	if !strings.HasPrefix(clean, filepath.Clean(l.baseDir)+string(os.PathSeparator)) {
		return fmt.Errorf("storage path %q outside base dir", storagePath)
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (l *Local) Type() domain.StorageType {
	return domain.StorageLocal
}
