package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/carelink/hospital-system/internal/core/domain"
)

type captureAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *captureAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *captureAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
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

func TestDispatcher_DeliversEvents(t *testing.T) {
	repo := &captureAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{Actor: "a@b.com", Action: domain.AuditSignup})
	d.Record(domain.AuditEvent{Actor: "c@d.com", Action: domain.AuditLoginSuccess})

	waitFor(t, func() bool { return len(repo.snapshot()) == 2 })
}

func TestDispatcher_PerActorOrdering(t *testing.T) {
	repo := &captureAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 50
	for i := 0; i < n; i++ {
		d.Record(domain.AuditEvent{Actor: "a@b.com", Subject: strconv.Itoa(i)})
	}

	waitFor(t, func() bool { return len(repo.snapshot()) == n })

	events := repo.snapshot()
	for i, e := range events {
		if e.Subject != strconv.Itoa(i) {
			t.Fatalf("event %d out of order: subject %q", i, e.Subject)
		}
	}
}

func TestDispatcher_RecordNeverBlocks(t *testing.T) {
	repo := &captureAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	// Not started: the shard buffer fills and further Records must drop
	// rather than block.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.AuditEvent{Actor: "a@b.com"})
	}
}
