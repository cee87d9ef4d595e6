package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID      map[string]*domain.User
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, u *domain.User) error {
	stored, ok := r.byID[u.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.FirstName = u.FirstName
	stored.LastName = u.LastName
	stored.Phone = u.Phone
	stored.UpdatedAt = u.UpdatedAt
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id string, role domain.Role) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListUsersFilter) ([]*domain.User, int64, error) {
	var matched []*domain.User
	for _, u := range r.byID {
		if f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Search)) {
			continue
		}
		clone := *u
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context) (map[domain.Role]int64, error) {
	counts := make(map[domain.Role]int64)
	for _, u := range r.byID {
		counts[u.Role]++
	}
	return counts, nil
}

// mustRegister seeds an account directly through the repo with a real bcrypt
// hash so Login exercises the same comparison path as production.
func mustRegister(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

type memRevoker struct {
	revoked map[string]time.Duration
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: make(map[string]time.Duration)}
}

func (m *memRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.revoked[tokenID] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func newTestAuthService(repo *stubUserRepo, revoker ports.TokenRevoker) *AuthService {
	return NewAuthService(repo, revoker, "test-secret", time.Hour, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuthService_Register(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newMemRevoker())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:     "founder@example.com",
		Password:  "s3cret-pass",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if user.Role != domain.RoleUser {
		t.Fatalf("new accounts must start as USER, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("new accounts must be active")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in clear")
	}

	stored, err := repo.FindByEmail(context.Background(), "founder@example.com")
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Fatalf("stored hash does not verify the original password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newMemRevoker())

	in := ports.RegisterInput{Email: "dup@example.com", Password: "pass-one"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newMemRevoker())
	seeded := mustRegister(t, repo, "alice@example.com", "correct-horse", domain.RoleUser, true)

	token, user, err := svc.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("wrong user returned")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if claims["sub"] != seeded.ID {
		t.Fatalf("sub claim = %v, want %s", claims["sub"], seeded.ID)
	}
	if claims["role"] != string(domain.RoleUser) {
		t.Fatalf("role claim = %v, want USER", claims["role"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Fatalf("token must carry a jti")
	}
}

func TestAuthService_Login_Rejections(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newMemRevoker())
	mustRegister(t, repo, "alice@example.com", "correct-horse", domain.RoleUser, true)
	mustRegister(t, repo, "sleepy@example.com", "correct-horse", domain.RoleUser, false)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown account", "nobody@example.com", "whatever"},
		{"wrong password", "alice@example.com", "wrong-horse"},
		{"deactivated account", "sleepy@example.com", "correct-horse"},
		{"empty password", "alice@example.com", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	revoker := newMemRevoker()
	svc := newTestAuthService(newStubUserRepo(), revoker)

	if err := svc.Logout(context.Background(), "tok-1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "tok-1"); !revoked {
		t.Fatalf("token not revoked")
	}

	// A token past its expiry needs no revocation entry.
	if err := svc.Logout(context.Background(), "tok-2", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("logout expired: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "tok-2"); revoked {
		t.Fatalf("expired token should not be stored")
	}
}

func TestAuthService_UpdateProfile_PartialFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newMemRevoker())
	seeded := mustRegister(t, repo, "alice@example.com", "pw", domain.RoleUser, true)
	repo.byID[seeded.ID].FirstName = "Alice"
	repo.byID[seeded.ID].LastName = "Original"

	newLast := "Updated"
	updated, err := svc.UpdateProfile(context.Background(), seeded.ID, ports.UpdateProfileInput{
		LastName: &newLast,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}

	if updated.FirstName != "Alice" {
		t.Fatalf("omitted field changed: first name = %q", updated.FirstName)
	}
	if updated.LastName != "Updated" {
		t.Fatalf("last name = %q, want Updated", updated.LastName)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, newMemRevoker())
	seeded := mustRegister(t, repo, "alice@example.com", "old-pass", domain.RoleUser, true)

	if err := svc.ChangePassword(context.Background(), seeded.ID, "wrong-pass", "new-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong current password: expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), seeded.ID, "old-pass", "new-pass"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "old-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted")
	}
	if _, _, err := svc.Login(context.Background(), "alice@example.com", "new-pass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
