package ports

import (
	"context"
	"time"
)

// AuditEventInput records one mutation of a directory user.
type AuditEventInput struct {
	UserID    string
	Action    string // "create", "update", "delete"
	Actor     string // authenticated username, when known
	Timestamp time.Time
}

// AuditRecorder persists audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEventInput) error
}

// AuditSink accepts audit events for asynchronous recording. Enqueueing never
// fails; recording failures are logged by the sink.
type AuditSink interface {
	Enqueue(event AuditEventInput)
}
