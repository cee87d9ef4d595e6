// Package storage persists uploaded document blobs on the local filesystem.
// The application record keeps only the returned locator, so a bucket-backed
// implementation can replace this one without touching callers.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStore writes blobs under root/<application_id>/<uuid><ext>.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if it does not exist.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save writes the file content and returns its locator, a path relative to
// the store root.
func (s *LocalStore) Save(ctx context.Context, applicationID, fileName string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, applicationID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create application dir: %w", err)
	}

	locator := filepath.Join(applicationID, uuid.NewString()+filepath.Ext(fileName))
	if err := os.WriteFile(filepath.Join(s.root, locator), data, 0o644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return locator, nil
}

// Remove deletes a stored blob. A missing blob is not an error.
func (s *LocalStore) Remove(ctx context.Context, locator string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, locator)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove document: %w", err)
	}
	return nil
}
