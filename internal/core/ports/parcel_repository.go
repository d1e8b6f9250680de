// Package ports defines the contracts between the use cases and the infrastructure:
// repositories, the unit of work, caller identity and queue change notification.
package ports

import (
	"context"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
)

// ParcelRepository persists parcel aggregates.
//
// No method applies an implicit "not removed" filter: lookups return the row in
// whatever state it is and the aggregate's State decides what is allowed.
// Lookups that find nothing return errs.ObjectNotFoundError.
type ParcelRepository interface {
	// ExistsGlobal reports whether any row, removed or not, carries the tracking ID.
	ExistsGlobal(ctx context.Context, trackingID kernel.TrackingID) (bool, error)

	// FindGlobal returns the row carrying the tracking ID, preferring the live
	// row over removed ones and the most recently updated among removed ones.
	FindGlobal(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error)

	// FindGlobalForUpdate is FindGlobal holding a row lock until the transaction ends.
	FindGlobalForUpdate(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error)

	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate is Get holding a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// Add inserts a new row. A live row with the same tracking ID is reported
	// as errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// AddBatch inserts all rows or none.
	AddBatch(ctx context.Context, aggregates []*parcel.Parcel) error

	// Update writes every mutable column, the removal marker included.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// SoftDelete stores the removal marker of a parcel that has just exited.
	SoftDelete(ctx context.Context, aggregate *parcel.Parcel) error
}
