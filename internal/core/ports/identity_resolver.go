package ports

import (
	"context"

	"fifo/internal/core/domain/model/audit"
)

// IdentityResolver finds the authenticated caller of the current request.
// It reports false when the request carries no identity.
type IdentityResolver interface {
	CurrentActor(ctx context.Context) (audit.Actor, bool)
}
