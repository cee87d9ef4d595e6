package ports

import (
	"context"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

// ListUsersInput carries all parameters for the admin user listing.
type ListUsersInput struct {
	Role   string
	Search string
	Page   int
	Limit  int
}

// ListUsersResult is returned by List.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// Stats is the aggregate overview recomputed per call from current store
// state. Kept behind the service interface so it can be swapped for cached
// aggregation without touching callers.
type Stats struct {
	ApplicationsByStatus map[domain.ApplicationStatus]int64
	UsersByRole          map[domain.Role]int64
}

// UserService defines the admin-facing account management operations.
type UserService interface {
	List(ctx context.Context, caller Caller, in ListUsersInput) (*ListUsersResult, error)
	Get(ctx context.Context, caller Caller, id string) (*domain.User, error)
	SetRole(ctx context.Context, caller Caller, id string, role domain.Role) (*domain.User, error)
	SetActive(ctx context.Context, caller Caller, id string, active bool) (*domain.User, error)
	// Delete removes the account and cascades to its applications.
	Delete(ctx context.Context, caller Caller, id string) error
	Stats(ctx context.Context, caller Caller) (*Stats, error)
}
