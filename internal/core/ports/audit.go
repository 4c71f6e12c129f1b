package ports

import (
	"context"

	"github.com/carelink/hospital-system/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence.
// Record must not block the caller; the trail is best-effort.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
