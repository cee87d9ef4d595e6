package ports

import (
	"context"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

// SubmitContactInput carries a public contact form submission.
type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService handles public contact submissions and admin triage.
type ContactService interface {
	Submit(ctx context.Context, in SubmitContactInput) (*domain.ContactMessage, error)
	List(ctx context.Context, caller Caller) ([]*domain.ContactMessage, error)
	Get(ctx context.Context, caller Caller, id string) (*domain.ContactMessage, error)
	SetResponded(ctx context.Context, caller Caller, id string, responded bool) (*domain.ContactMessage, error)
}
