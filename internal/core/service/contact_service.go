package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ignitecapital/funding-platform/internal/api/metrics"
	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
	"github.com/ignitecapital/funding-platform/internal/pkg/retry"
)

// ContactService handles public contact submissions and admin triage.
type ContactService struct {
	repo ports.ContactRepository
	log  zerolog.Logger
}

func NewContactService(repo ports.ContactRepository, log zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, log: log}
}

// Submit records a public contact form submission. No authentication.
func (s *ContactService) Submit(ctx context.Context, in ports.SubmitContactInput) (*domain.ContactMessage, error) {
	msg := &domain.ContactMessage{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	metrics.ContactMessagesTotal.Inc()
	s.log.Info().Str("contact_id", created.ID).Msg("contact message received")
	return created, nil
}

// List returns all messages, newest first. Admin only.
func (s *ContactService) List(ctx context.Context, caller ports.Caller) ([]*domain.ContactMessage, error) {
	if !caller.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return retry.Read(ctx, func(ctx context.Context) ([]*domain.ContactMessage, error) {
		return s.repo.List(ctx)
	})
}

// Get returns a single message. Admin only.
func (s *ContactService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.ContactMessage, error) {
	if !caller.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return retry.Read(ctx, func(ctx context.Context) (*domain.ContactMessage, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// SetResponded flips the responded flag. Admin only.
func (s *ContactService) SetResponded(ctx context.Context, caller ports.Caller, id string, responded bool) (*domain.ContactMessage, error) {
	if !caller.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := s.repo.SetResponded(ctx, id, responded); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}
