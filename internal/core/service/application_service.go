package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ignitecapital/funding-platform/internal/api/metrics"
	"github.com/ignitecapital/funding-platform/internal/core/domain"
	"github.com/ignitecapital/funding-platform/internal/core/ports"
	"github.com/ignitecapital/funding-platform/internal/pkg/retry"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// AuditSink receives applied status transitions for asynchronous persistence.
type AuditSink interface {
	Enqueue(event domain.StatusEvent)
}

// ApplicationService implements the fund-application use cases. Policy and
// state-machine checks run before any write, so a rejected operation leaves
// no partial state behind.
type ApplicationService struct {
	repo  ports.ApplicationRepository
	docs  ports.DocumentStore
	audit AuditSink
	log   zerolog.Logger
}

func NewApplicationService(repo ports.ApplicationRepository, docs ports.DocumentStore, audit AuditSink, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{repo: repo, docs: docs, audit: audit, log: log}
}

// Create opens a new application in DRAFT owned by the caller.
func (s *ApplicationService) Create(ctx context.Context, caller ports.Caller, in ports.CreateApplicationInput) (*domain.Application, error) {
	if !in.FundType.Valid() {
		return nil, fmt.Errorf("%w: unknown fund type %q", domain.ErrInvalidState, in.FundType)
	}

	now := time.Now().UTC()
	app := &domain.Application{
		OwnerID:   caller.ID,
		FundType:  in.FundType,
		Status:    domain.StatusDraft,
		Fields:    in.Fields,
		Documents: []domain.Document{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, app)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", caller.ID).Msg("failed to create application")
		return nil, err
	}

	metrics.ApplicationsCreatedTotal.WithLabelValues(string(created.FundType)).Inc()
	s.log.Info().Str("application_id", created.ID).Str("owner_id", caller.ID).
		Str("fund_type", string(created.FundType)).Msg("application created")
	return created, nil
}

// Get returns the application when the caller is an admin or its owner.
func (s *ApplicationService) Get(ctx context.Context, caller ports.Caller, id string) (*domain.Application, error) {
	app, err := retry.Read(ctx, func(ctx context.Context) (*domain.Application, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if !domain.CanReadApplication(caller.Role, caller.ID, app.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return app, nil
}

// ListMine returns the caller's own applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, caller ports.Caller) ([]*domain.Application, error) {
	return retry.Read(ctx, func(ctx context.Context) ([]*domain.Application, error) {
		return s.repo.ListByOwner(ctx, caller.ID)
	})
}

// Update replaces the form fields. Only the owner may update, and only while
// the status is still editable.
func (s *ApplicationService) Update(ctx context.Context, caller ports.Caller, id string, fields domain.Fields) (*domain.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEditApplication(caller.Role, caller.ID, app); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	app.Fields = fields
	app.UpdatedAt = time.Now().UTC()
	return app, nil
}

// AttachDocument stores the file bytes and binds the document to the
// application under the same ownership and status gate as Update.
func (s *ApplicationService) AttachDocument(ctx context.Context, caller ports.Caller, in ports.AttachDocumentInput) (*domain.Document, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidState, in.Type)
	}

	app, err := s.repo.FindByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEditApplication(caller.Role, caller.ID, app); err != nil {
		return nil, err
	}

	locator, err := s.docs.Save(ctx, in.ApplicationID, in.FileName, in.Data)
	if err != nil {
		return nil, err
	}

	doc := domain.Document{
		ID:             uuid.NewString(),
		Type:           in.Type,
		FileName:       in.FileName,
		StorageLocator: locator,
		SizeBytes:      int64(len(in.Data)),
		UploadedAt:     time.Now().UTC(),
	}

	if err := s.repo.AddDocument(ctx, in.ApplicationID, doc); err != nil {
		// The blob is orphaned if this fails; remove it so the store stays
		// in step with the aggregate.
		_ = s.docs.Remove(ctx, locator)
		return nil, err
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(string(doc.Type)).Inc()
	s.log.Info().Str("application_id", in.ApplicationID).
		Str("document_type", string(doc.Type)).Msg("document attached")
	return &doc, nil
}

// Submit moves the caller's DRAFT or NEEDS_REVISION application to SUBMITTED.
func (s *ApplicationService) Submit(ctx context.Context, caller ports.Caller, id string) (*domain.Application, error) {
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller.Role.IsAdmin() || caller.ID != app.OwnerID {
		return nil, domain.ErrForbidden
	}
	return s.transition(ctx, caller, app, domain.StatusSubmitted, "")
}

// ListAll is the admin listing with filters and deterministic pagination.
func (s *ApplicationService) ListAll(ctx context.Context, caller ports.Caller, in ports.ListApplicationsInput) (*ports.ListApplicationsResult, error) {
	if !caller.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	page, limit := normalizePage(in.Page, in.Limit)
	filter := ports.ListApplicationsFilter{
		Status:   in.Status,
		FundType: in.FundType,
		Search:   in.Search,
		Page:     page,
		Limit:    limit,
	}

	type listPage struct {
		items []*domain.Application
		total int64
	}
	out, err := retry.Read(ctx, func(ctx context.Context) (listPage, error) {
		items, total, err := s.repo.List(ctx, filter)
		return listPage{items: items, total: total}, err
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListApplicationsResult{
		Items:      out.items,
		Total:      out.total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(out.total, limit),
	}, nil
}

// SetStatus applies an admin review transition. SUBMITTED is only reachable
// through the owner submit flow, never from here.
func (s *ApplicationService) SetStatus(ctx context.Context, caller ports.Caller, in ports.SetStatusInput) (*domain.Application, error) {
	if !caller.Role.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidTransition, in.Status)
	}
	if in.Status == domain.StatusSubmitted {
		return nil, fmt.Errorf("%w: %s is applied by the applicant", domain.ErrInvalidTransition, domain.StatusSubmitted)
	}

	app, err := s.repo.FindByID(ctx, in.ApplicationID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, caller, app, in.Status, in.ReviewNotes)
}

// Delete removes the application, its stored blobs and the embedded document
// records. Admin only.
func (s *ApplicationService) Delete(ctx context.Context, caller ports.Caller, id string) error {
	if !caller.Role.IsAdmin() {
		return domain.ErrForbidden
	}

	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, doc := range app.Documents {
		if err := s.docs.Remove(ctx, doc.StorageLocator); err != nil {
			s.log.Warn().Err(err).Str("application_id", id).
				Str("locator", doc.StorageLocator).Msg("failed to remove stored document")
		}
	}

	s.log.Info().Str("application_id", id).Str("actor_id", caller.ID).Msg("application deleted")
	return nil
}

// transition validates and persists a status change, then enqueues the audit
// event. Every applied transition refreshes updated_at.
func (s *ApplicationService) transition(ctx context.Context, caller ports.Caller, app *domain.Application, next domain.ApplicationStatus, notes string) (*domain.Application, error) {
	if !app.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, app.Status, next)
	}

	if err := s.repo.UpdateStatus(ctx, app.ID, next, notes); err != nil {
		return nil, err
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(app.Status), string(next)).Inc()
	if s.audit != nil {
		s.audit.Enqueue(domain.StatusEvent{
			ApplicationID: app.ID,
			From:          app.Status,
			To:            next,
			ActorID:       caller.ID,
			Notes:         notes,
			At:            time.Now().UTC(),
		})
	}

	s.log.Info().Str("application_id", app.ID).
		Str("from", string(app.Status)).Str("to", string(next)).
		Str("actor_id", caller.ID).Msg("status transition applied")

	app.Status = next
	if notes != "" {
		app.ReviewNotes = notes
	}
	app.UpdatedAt = time.Now().UTC()
	return app, nil
}

// normalizePage applies the pagination defaults and caps.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	return int(math.Ceil(float64(total) / float64(limit)))
}
