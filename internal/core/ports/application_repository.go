package ports

import (
	"context"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

// ListApplicationsFilter carries all query parameters for listing applications.
// OwnerID is enforced by the service layer for non-admin callers.
type ListApplicationsFilter struct {
	OwnerID  string // empty = no filter (admin); non-empty = scoped to owner
	Status   string // optional: filter by application status
	FundType string // optional: filter by fund type
	Search   string // optional: partial match on business name
	Page     int    // 1-based
	Limit    int    // max rows per page (capped at 100 by service)
}

// ApplicationRepository defines persistence operations for applications.
// Writes are last-write-wins: no version tokens are kept, so concurrent
// updates to the same aggregate race and the later write prevails.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) (*domain.Application, error)
	FindByID(ctx context.Context, id string) (*domain.Application, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Application, error)
	// List returns a page of applications matching filter, newest first,
	// and the total count.
	List(ctx context.Context, filter ListApplicationsFilter) ([]*domain.Application, int64, error)
	// UpdateFields persists the applicant-editable form fields and refreshes
	// updated_at.
	UpdateFields(ctx context.Context, id string, fields domain.Fields) error
	// UpdateStatus sets the new status and, when notes is non-empty, the
	// review notes.
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus, notes string) error
	// AddDocument appends a document to the application's collection.
	AddDocument(ctx context.Context, id string, doc domain.Document) error
	// Delete removes the application. Embedded documents go with it; blob
	// cleanup is the caller's concern.
	Delete(ctx context.Context, id string) error
	// CountByStatus aggregates the current application population per status.
	CountByStatus(ctx context.Context) (map[domain.ApplicationStatus]int64, error)
}
