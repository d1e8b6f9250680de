// Package audit records audit entries on behalf of the use cases.
package audit

import (
	"context"
	"fmt"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/ports"
)

// Recorder attributes and stores audit entries.
//
// The entry is written through the repository of the caller's unit of work, so
// it commits or rolls back with the change it describes. A caller without a
// resolvable identity is recorded as the system actor; that never fails the
// operation. Store failures are returned so the business transaction rolls back.
type Recorder struct {
	resolver ports.IdentityResolver
	clock    kernel.Clock
}

func NewRecorder(resolver ports.IdentityResolver, clock kernel.Clock) *Recorder {
	return &Recorder{resolver: resolver, clock: clock}
}

func (r *Recorder) Record(
	ctx context.Context,
	repo ports.AuditLogRepository,
	action audit.Action,
	details string,
) error {
	entry, err := audit.NewEntry(kernel.NewUUID(), r.actor(ctx), action, details, r.clock.Now())
	if err != nil {
		return err
	}

	if err = repo.Add(ctx, entry); err != nil {
		return fmt.Errorf("record %s audit entry: %w", action, err)
	}
	return nil
}

func (r *Recorder) actor(ctx context.Context) audit.Actor {
	if r.resolver == nil {
		return audit.SystemActor()
	}
	actor, ok := r.resolver.CurrentActor(ctx)
	if !ok || actor.IsZero() {
		return audit.SystemActor()
	}
	return actor
}
