package ports

import (
	"context"

	"fifo/internal/core/domain/model/audit"
)

// AuditLogRepository appends audit entries. Entries are never updated or removed.
type AuditLogRepository interface {
	Add(ctx context.Context, entry *audit.Entry) error
}
