package ports

import (
	"context"
	"time"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

// RegisterInput carries the public registration payload.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string // optional
}

// UpdateProfileInput carries the self-service profile fields. Nil pointers
// mean "leave unchanged".
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Phone     *string
}

// TokenRevoker blocks issued credentials ahead of their natural expiry
// (logout, forced logout).
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthService implements registration, login and self-service account ops.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the presented token until its natural expiry.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, newPassword string) error
}
