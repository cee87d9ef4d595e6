package ports

import (
	"context"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

// AuditRepository appends status transitions to the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.StatusEvent) error
}
