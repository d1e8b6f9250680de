package queries

import (
	"errors"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/guard"
)

var ErrLookupTrackingIDQueryIsNotConstructed = errors.New(
	"LookupTrackingIDQuery must be created via NewLookupTrackingIDQuery constructor",
)

// LookupTrackingIDQuery checks whether a label was ever confirmed or used,
// removed rows included.
type LookupTrackingIDQuery struct {
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewLookupTrackingIDQuery(trackingID string) (LookupTrackingIDQuery, error) {
	id, err := kernel.NewTrackingID(trackingID)
	if err != nil {
		return LookupTrackingIDQuery{}, err
	}

	return LookupTrackingIDQuery{
		trackingID: id,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q LookupTrackingIDQuery) Validate() error {
	return q.guard.Validate(ErrLookupTrackingIDQueryIsNotConstructed)
}

func (q LookupTrackingIDQuery) TrackingID() kernel.TrackingID {
	return q.trackingID
}

type LookupTrackingIDQueryResponse struct {
	TrackingID string
}
