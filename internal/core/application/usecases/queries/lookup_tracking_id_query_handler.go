package queries

import (
	"context"

	"fifo/internal/core/domain/services"
	"fifo/internal/pkg/errs"
)

type LookupTrackingIDQueryHandler struct {
	checker services.TrackingIDExistenceChecker
}

func NewLookupTrackingIDQueryHandler(checker services.TrackingIDExistenceChecker) LookupTrackingIDQueryHandler {
	return LookupTrackingIDQueryHandler{checker: checker}
}

// Handle returns the normalized label, or errs.ObjectNotFoundError if no row carries it.
func (h LookupTrackingIDQueryHandler) Handle(
	ctx context.Context,
	query LookupTrackingIDQuery,
) (LookupTrackingIDQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return LookupTrackingIDQueryResponse{}, err
	}

	exists, err := h.checker.ExistsGlobal(ctx, query.TrackingID())
	if err != nil {
		return LookupTrackingIDQueryResponse{}, err
	}
	if !exists {
		return LookupTrackingIDQueryResponse{}, errs.NewObjectNotFoundError("trackingID", query.TrackingID().String())
	}

	return LookupTrackingIDQueryResponse{TrackingID: query.TrackingID().String()}, nil
}
