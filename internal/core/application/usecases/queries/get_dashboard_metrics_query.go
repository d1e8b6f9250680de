package queries

import (
	"errors"

	"fifo/internal/pkg/guard"
)

var ErrGetDashboardMetricsQueryIsNotConstructed = errors.New(
	"GetDashboardMetricsQuery must be created via NewGetDashboardMetricsQuery constructor",
)

type GetDashboardMetricsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetDashboardMetricsQuery() GetDashboardMetricsQuery {
	return GetDashboardMetricsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetDashboardMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardMetricsQueryIsNotConstructed)
}

// GetDashboardMetricsQueryResponse is keyed by buffer name (RTS, EHA, SAL).
// AvgWaitSeconds only has the RTS and EHA keys.
type GetDashboardMetricsQueryResponse struct {
	BacklogCount   int
	BacklogValue   int
	Counts         map[string]int
	Values         map[string]int
	AvgWaitSeconds map[string]float64
}
