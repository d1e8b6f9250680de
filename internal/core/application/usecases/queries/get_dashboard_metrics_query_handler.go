package queries

import (
	"context"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/core/domain/services"
)

// ActiveParcelLister is satisfied by ListActiveParcelsQueryHandler.
type ActiveParcelLister interface {
	Handle(ctx context.Context, query ListActiveParcelsQuery) ([]ActiveParcelResponse, error)
}

type GetDashboardMetricsQueryHandler struct {
	lister     ActiveParcelLister
	calculator services.MetricsCalculator
	clock      kernel.Clock
}

func NewGetDashboardMetricsQueryHandler(lister ActiveParcelLister, clock kernel.Clock) GetDashboardMetricsQueryHandler {
	return GetDashboardMetricsQueryHandler{
		lister:     lister,
		calculator: services.NewMetricsCalculator(),
		clock:      clock,
	}
}

func (h GetDashboardMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardMetricsQuery,
) (GetDashboardMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	active, err := h.lister.Handle(ctx, NewListActiveParcelsQuery())
	if err != nil {
		return GetDashboardMetricsQueryResponse{}, err
	}

	queued := make([]services.QueuedParcel, 0, len(active))
	for _, item := range active {
		buffer, bufErr := parcel.ParseBuffer(item.Buffer)
		if bufErr != nil {
			return GetDashboardMetricsQueryResponse{}, bufErr
		}
		profile, profErr := parcel.ParseProfile(item.Profile)
		if profErr != nil {
			return GetDashboardMetricsQueryResponse{}, profErr
		}
		queued = append(queued, services.QueuedParcel{
			Buffer:         buffer,
			Profile:        profile,
			EntryTimestamp: item.EntryTimestamp,
		})
	}

	m := h.calculator.Calculate(queued, h.clock.Now())

	resp := GetDashboardMetricsQueryResponse{
		BacklogCount:   m.BacklogCount,
		BacklogValue:   m.BacklogValue,
		Counts:         make(map[string]int, len(m.Counts)),
		Values:         make(map[string]int, len(m.Values)),
		AvgWaitSeconds: make(map[string]float64, len(m.AvgWaitSeconds)),
	}
	for b, v := range m.Counts {
		resp.Counts[b.String()] = v
	}
	for b, v := range m.Values {
		resp.Values[b.String()] = v
	}
	for b, v := range m.AvgWaitSeconds {
		resp.AvgWaitSeconds[b.String()] = v
	}

	return resp, nil
}
