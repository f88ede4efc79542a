package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"Club_Portal/internal/pkg"
)

const (
	AuditRoleChanged        = "account.role_changed"
	AuditActivated          = "account.activated"
	AuditDeactivated        = "account.deactivated"
	AuditDeleted            = "account.deleted"
	AuditBlogApproved       = "blog.approved"
	AuditPermissionsChanged = "role.permissions_changed"
)

type AuditEvent struct {
	Type     string            `json:"type"`
	ActorID  string            `json:"actor_id"`
	TargetID string            `json:"target_id"`
	Detail   map[string]string `json:"detail,omitempty"`
	At       time.Time         `json:"at"`
}

type AuditSink interface {
	Publish(ctx context.Context, ev AuditEvent) error
}

// KafkaAuditSink writes events keyed by target id.
type KafkaAuditSink struct {
	Producer *pkg.KafkaProducer
}

func (s *KafkaAuditSink) Publish(ctx context.Context, ev AuditEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Producer.Send(ctx, ev.TargetID, b)
}

type Auditor struct {
	sink AuditSink
	now  func() time.Time
}

func NewAuditor(sink AuditSink, now func() time.Time) *Auditor {
	if now == nil {
		now = time.Now
	}
	return &Auditor{sink: sink, now: now}
}

// Record publishes best-effort; a failed publish never fails the caller.
func (a *Auditor) Record(ctx context.Context, typ, actorID, targetID string, detail map[string]string) {
	if a == nil || a.sink == nil {
		return
	}
	ev := AuditEvent{Type: typ, ActorID: actorID, TargetID: targetID, Detail: detail, At: a.now().UTC()}
	if err := a.sink.Publish(ctx, ev); err != nil {
		slog.Warn("failed to publish audit event", "type", typ, "target_id", targetID, "error", err)
	}
}
