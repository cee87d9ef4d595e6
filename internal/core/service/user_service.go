package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
	"github.com/ignitecapital/funding-platform/internal/pkg/retry"
)

// UserService implements the admin-facing account operations and the stats
// overview. Every mutation is gated on the access policy before any write.
type UserService struct {
	users ports.UserRepository
	apps  ports.ApplicationRepository
	docs  ports.DocumentStore
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, apps ports.ApplicationRepository, docs ports.DocumentStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, apps: apps, docs: docs, log: log}
}

// List returns a page of users. Admin only.
func (s *UserService) List(ctx context.Context, caller ports.Caller, in ports.ListUsersInput) (*ports.ListUsersResult, error) {
	if !domain.CanManageUsers(caller.Role) {
		return nil, domain.ErrForbidden
	}

	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListUsersFilter{
		Role:   in.Role,
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	}

	type listPage struct {
		items []*domain.User
		total int64
	}
	out, err := retry.Read(ctx, func(ctx context.Context) (listPage, error) {
		items, total, err := s.users.List(ctx, filter)
		return listPage{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListUsersResult{
		Items:      out.items,
		Total:      out.total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(out.total, limit),
	}, nil
}

// Get returns a single user record. Admin only.
func (s *UserService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.User, error) {
	if !domain.CanManageUsers(caller.Role) {
		return nil, domain.ErrForbidden
	}
	return retry.Read(ctx, func(ctx context.Context) (*domain.User, error) {
		return s.users.FindByID(ctx, id)
	})
}

// SetRole changes the target's role. Both granting SUPER_ADMIN and changing
// the role of an existing SUPER_ADMIN are reserved to SUPER_ADMIN callers.
func (s *UserService) SetRole(ctx context.Context, caller ports.Caller, id string, role domain.Role) (*domain.User, error) {
	if !domain.CanManageUsers(caller.Role) {
		return nil, domain.ErrForbidden
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrForbidden, role)
	}

	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanAssignRole(caller.Role, target.Role, role) {
		return nil, domain.ErrForbidden
	}

	if err := s.users.SetRole(ctx, id, role); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("role", string(role)).
		Str("actor_id", caller.ID).Msg("user role updated")
	return s.users.FindByID(ctx, id)
}

// SetActive toggles the soft-deactivation flag. Admin only.
func (s *UserService) SetActive(ctx context.Context, caller ports.Caller, id string, active bool) (*domain.User, error) {
	if !domain.CanManageUsers(caller.Role) {
		return nil, domain.ErrForbidden
	}

	if err := s.users.SetActive(ctx, id, active); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Bool("active", active).
		Str("actor_id", caller.ID).Msg("user active flag updated")
	return s.users.FindByID(ctx, id)
}

// Delete removes the account and cascades to its applications, including
// their stored document blobs. Admin only.
func (s *UserService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	if !domain.CanManageUsers(caller.Role) {
		return domain.ErrForbidden
	}

	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	apps, err := s.apps.ListByOwner(ctx, id)
	if err != nil {
		return err
	}
	for _, app := range apps {
		if err := s.apps.Delete(ctx, app.ID); err != nil {
			return err
		}
		for _, doc := range app.Documents {
			if err := s.docs.Remove(ctx, doc.StorageLocator); err != nil {
				s.log.Warn().Err(err).Str("application_id", app.ID).
					Str("locator", doc.StorageLocator).Msg("failed to remove stored document")
			}
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Int("applications_removed", len(apps)).
		Str("actor_id", caller.ID).Msg("user deleted")
	return nil
}

// Stats recomputes the aggregate overview from current store state on every
// call. Admin only.
func (s *UserService) Stats(ctx context.Context, caller ports.Caller) (*ports.Stats, error) {
	if !domain.CanManageUsers(caller.Role) {
		return nil, domain.ErrForbidden
	}

	return retry.Read(ctx, func(ctx context.Context) (*ports.Stats, error) {
		byStatus, err := s.apps.CountByStatus(ctx)
		if err != nil {
			return nil, err
		}
		byRole, err := s.users.CountByRole(ctx)
		if err != nil {
			return nil, err
		}
		return &ports.Stats{ApplicationsByStatus: byStatus, UsersByRole: byRole}, nil
	})
}
