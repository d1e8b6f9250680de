package ports

import (
	"context"

	"fifo/internal/core/domain/model/parcel"
)

// QueueObserver is told about parcels touched by a committed transaction.
// It is never called for rolled back work.
type QueueObserver interface {
	QueueChanged(ctx context.Context, parcels []*parcel.Parcel)
}
