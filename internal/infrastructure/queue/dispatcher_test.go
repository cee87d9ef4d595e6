package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ignitecapital/funding-platform/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.StatusEvent
}

func (r *recordingAuditRepo) InsertEvent(_ context.Context, event *domain.StatusEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingAuditRepo) snapshot() []domain.StatusEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StatusEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within deadline")
}

func TestAuditDispatcher_PersistsEvents(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewAuditDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Enqueue(domain.StatusEvent{
			ApplicationID: fmt.Sprintf("app-%d", i),
			From:          domain.StatusDraft,
			To:            domain.StatusSubmitted,
			ActorID:       "user-1",
			At:            time.Now().UTC(),
		})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == 10 })
}

// Events for one application must be persisted in the order they were
// enqueued, regardless of worker count.
func TestAuditDispatcher_PerApplicationOrdering(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	sequence := []domain.ApplicationStatus{
		domain.StatusSubmitted,
		domain.StatusUnderReview,
		domain.StatusNeedsRevision,
		domain.StatusSubmitted,
		domain.StatusUnderReview,
		domain.StatusApproved,
	}
	for _, to := range sequence {
		d.Enqueue(domain.StatusEvent{ApplicationID: "app-1", To: to})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == len(sequence) })

	got := repo.snapshot()
	for i, to := range sequence {
		if got[i].To != to {
			t.Fatalf("event %d = %s, want %s", i, got[i].To, to)
		}
	}
}

func TestAuditDispatcher_ShardIsStable(t *testing.T) {
	d := NewAuditDispatcher(4, &recordingAuditRepo{}, zerolog.Nop())

	first := d.shardIndex("app-42")
	for i := 0; i < 100; i++ {
		if d.shardIndex("app-42") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func TestAuditDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewAuditDispatcher(0, &recordingAuditRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}
