package ports

import (
	"context"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

// Caller identifies the authenticated actor behind a request.
type Caller struct {
	ID   string
	Role domain.Role
}

// CreateApplicationInput carries the data needed to open a new application.
type CreateApplicationInput struct {
	FundType domain.FundType
	Fields   domain.Fields
}

// AttachDocumentInput carries an uploaded file and its business category.
type AttachDocumentInput struct {
	ApplicationID string
	Type          domain.DocumentType
	FileName      string
	Data          []byte
}

// SetStatusInput carries an admin-driven status transition.
type SetStatusInput struct {
	ApplicationID string
	Status        domain.ApplicationStatus
	ReviewNotes   string // optional
}

// ListApplicationsInput carries all parameters for the admin list endpoint.
type ListApplicationsInput struct {
	Status   string
	FundType string
	Search   string
	Page     int
	Limit    int
}

// ListApplicationsResult is returned by ListAll.
type ListApplicationsResult struct {
	Items      []*domain.Application
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ApplicationService defines use-case operations for fund applications.
type ApplicationService interface {
	Create(ctx context.Context, caller Caller, in CreateApplicationInput) (*domain.Application, error)
	Get(ctx context.Context, caller Caller, id string) (*domain.Application, error)
	ListMine(ctx context.Context, caller Caller) ([]*domain.Application, error)
	Update(ctx context.Context, caller Caller, id string, fields domain.Fields) (*domain.Application, error)
	AttachDocument(ctx context.Context, caller Caller, in AttachDocumentInput) (*domain.Document, error)
	// Submit moves a DRAFT or NEEDS_REVISION application to SUBMITTED.
	Submit(ctx context.Context, caller Caller, id string) (*domain.Application, error)
	// ListAll is the admin listing with filters and pagination.
	ListAll(ctx context.Context, caller Caller, in ListApplicationsInput) (*ListApplicationsResult, error)
	// SetStatus applies an admin review transition.
	SetStatus(ctx context.Context, caller Caller, in SetStatusInput) (*domain.Application, error)
	// Delete removes the application and all its documents.
	Delete(ctx context.Context, caller Caller, id string) error
}
