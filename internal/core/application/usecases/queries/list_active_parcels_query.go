package queries

import (
	"errors"
	"time"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/guard"
)

var ErrListActiveParcelsQueryIsNotConstructed = errors.New(
	"ListActiveParcelsQuery must be created via NewListActiveParcelsQuery constructor",
)

// ListActiveParcelsQuery returns the queue: every parcel in an operational
// buffer, oldest entry first.
type ListActiveParcelsQuery struct {
	guard guard.ConstructorGuard
}

func NewListActiveParcelsQuery() ListActiveParcelsQuery {
	return ListActiveParcelsQuery{guard: guard.NewConstructorGuard()}
}

func (q ListActiveParcelsQuery) Validate() error {
	return q.guard.Validate(ErrListActiveParcelsQueryIsNotConstructed)
}

type ActiveParcelResponse struct {
	ID             kernel.UUID
	TrackingID     string
	Buffer         string
	Lane           string
	Profile        string
	ProfileValue   int
	EntryTimestamp *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
