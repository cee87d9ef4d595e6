// Package retry implements the bounded retry policy for read operations.
// Writes are never routed through here: a transient failure on a mutation is
// surfaced immediately, uncommitted.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

const (
	// Attempts is the total number of tries for an idempotent read.
	Attempts = 3
	baseWait = 50 * time.Millisecond
)

// permanent lists domain errors that must never be retried: the store
// answered, the answer just wasn't what the caller hoped for.
var permanent = []error{
	domain.ErrUserNotFound,
	domain.ErrApplicationNotFound,
	domain.ErrContactNotFound,
	domain.ErrForbidden,
	domain.ErrInvalidCredentials,
	domain.ErrDuplicateEmail,
	domain.ErrInvalidState,
	domain.ErrInvalidTransition,
}

func isPermanent(err error) bool {
	for _, p := range permanent {
		if errors.Is(err, p) {
			return true
		}
	}
	return false
}

// Read runs fn up to Attempts times, backing off briefly between tries.
// Domain errors and context cancellation stop the loop immediately.
func Read[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < Attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(baseWait * time.Duration(attempt)):
			}
		}
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		if isPermanent(err) || ctx.Err() != nil {
			return zero, err
		}
		lastErr = err
	}
	return zero, lastErr
}
