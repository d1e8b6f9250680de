// Package queries contains the read operations: label allocation and lookup,
// the active queue, dashboard metrics and the audit log.
package queries

import (
	"errors"

	"fifo/internal/core/domain/services"
	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

var ErrGenerateTrackingIDsQueryIsNotConstructed = errors.New(
	"GenerateTrackingIDsQuery must be created via NewGenerateTrackingIDsQuery constructor",
)

// GenerateTrackingIDsQuery proposes labels to print. Nothing is reserved until
// the labels are confirmed.
type GenerateTrackingIDsQuery struct {
	quantity int

	guard guard.ConstructorGuard
}

func NewGenerateTrackingIDsQuery(quantity int) (GenerateTrackingIDsQuery, error) {
	if quantity <= 0 {
		return GenerateTrackingIDsQuery{}, errs.NewValueIsOutOfRangeError(
			"quantity", quantity, 1, services.TrackingIDCeiling)
	}

	return GenerateTrackingIDsQuery{
		quantity: quantity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GenerateTrackingIDsQuery) Validate() error {
	return q.guard.Validate(ErrGenerateTrackingIDsQueryIsNotConstructed)
}

func (q GenerateTrackingIDsQuery) Quantity() int {
	return q.quantity
}

// GenerateTrackingIDsQueryResponse may hold fewer labels than requested once
// the counter space is exhausted.
type GenerateTrackingIDsQueryResponse struct {
	Requested   int
	TrackingIDs []string
}
