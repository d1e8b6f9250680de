package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. The parcel change and its audit
// entry are written through the same unit of work so they commit or roll back
// together.
type UnitOfWork interface {
	// Begin starts the transaction. Calling it twice is a no-op.
	Begin(ctx context.Context) error

	// Commit returns an error if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback returns an error if no transaction is active.
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository

	AuditLogRepository() AuditLogRepository
}
