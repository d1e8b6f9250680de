package queries

import (
	"context"

	"fifo/internal/core/domain/services"
)

type GenerateTrackingIDsQueryHandler struct {
	checker   services.TrackingIDExistenceChecker
	allocator services.TrackingIDAllocator
}

func NewGenerateTrackingIDsQueryHandler(
	checker services.TrackingIDExistenceChecker,
	allocator services.TrackingIDAllocator,
) GenerateTrackingIDsQueryHandler {
	return GenerateTrackingIDsQueryHandler{
		checker:   checker,
		allocator: allocator,
	}
}

func (h GenerateTrackingIDsQueryHandler) Handle(
	ctx context.Context,
	query GenerateTrackingIDsQuery,
) (GenerateTrackingIDsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GenerateTrackingIDsQueryResponse{}, err
	}

	ids, err := h.allocator.Allocate(ctx, query.Quantity(), h.checker)
	if err != nil {
		return GenerateTrackingIDsQueryResponse{}, err
	}

	labels := make([]string, 0, len(ids))
	for _, id := range ids {
		labels = append(labels, id.String())
	}

	return GenerateTrackingIDsQueryResponse{
		Requested:   query.Quantity(),
		TrackingIDs: labels,
	}, nil
}
