package ports

import (
	"context"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

// ContactRepository defines persistence operations for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error)
	FindByID(ctx context.Context, id string) (*domain.ContactMessage, error)
	// List returns all messages, newest first.
	List(ctx context.Context) ([]*domain.ContactMessage, error)
	SetResponded(ctx context.Context, id string, responded bool) error
}
