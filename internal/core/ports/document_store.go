package ports

import "context"

// DocumentStore persists uploaded file content and hands back an opaque
// storage locator. The application record keeps only the locator.
type DocumentStore interface {
	Save(ctx context.Context, applicationID, fileName string, data []byte) (locator string, err error)
	// Remove deletes a stored blob. Missing blobs are not an error.
	Remove(ctx context.Context, locator string) error
}
