package services

import (
	"time"

	"fifo/internal/core/domain/model/parcel"
)

// QueuedParcel is the slice of an active parcel the dashboard needs.
type QueuedParcel struct {
	Buffer         parcel.Buffer
	Profile        parcel.Profile
	EntryTimestamp *time.Time
}

// DashboardMetrics is the snapshot shown on the operations dashboard.
type DashboardMetrics struct {
	BacklogCount   int
	BacklogValue   int
	Counts         map[parcel.Buffer]int
	Values         map[parcel.Buffer]int
	AvgWaitSeconds map[parcel.Buffer]float64
}

// MetricsCalculator aggregates the active queue. It holds no state.
//
// The backlog covers RTS and EHA; SAL is outbound and only counted per buffer.
// Average wait is the mean time since entry over parcels that have an entry
// timestamp not in the future. An empty bucket averages to 0.
type MetricsCalculator struct{}

func NewMetricsCalculator() MetricsCalculator {
	return MetricsCalculator{}
}

func (MetricsCalculator) Calculate(parcels []QueuedParcel, now time.Time) DashboardMetrics {
	m := DashboardMetrics{
		Counts:         make(map[parcel.Buffer]int, 3),
		Values:         make(map[parcel.Buffer]int, 3),
		AvgWaitSeconds: make(map[parcel.Buffer]float64, 2),
	}

	var (
		waitSum   = map[parcel.Buffer]float64{}
		waitCount = map[parcel.Buffer]int{}
	)

	for _, b := range parcel.OperationalBuffers() {
		m.Counts[b] = 0
		m.Values[b] = 0
		if b.CountsTowardsBacklog() {
			m.AvgWaitSeconds[b] = 0
		}
	}

	for _, p := range parcels {
		if !p.Buffer.IsOperational() {
			continue
		}

		value := p.Profile.Value()
		m.Counts[p.Buffer]++
		m.Values[p.Buffer] += value

		if !p.Buffer.CountsTowardsBacklog() {
			continue
		}
		m.BacklogCount++
		m.BacklogValue += value

		if p.EntryTimestamp == nil {
			continue
		}
		if elapsed := now.Sub(*p.EntryTimestamp); elapsed >= 0 {
			waitSum[p.Buffer] += elapsed.Seconds()
			waitCount[p.Buffer]++
		}
	}

	for b, n := range waitCount {
		m.AvgWaitSeconds[b] = waitSum[b] / float64(n)
	}

	return m
}
