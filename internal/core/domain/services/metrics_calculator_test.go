package services_test

import (
	"testing"
	"time"

	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCalculator_Calculate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		ts := now.Add(-d)
		return &ts
	}
	calc := services.NewMetricsCalculator()

	t.Run("should return zeroed buckets for an empty queue", func(t *testing.T) {
		m := calc.Calculate(nil, now)

		assert.Equal(t, 0, m.BacklogCount)
		assert.Equal(t, 0, m.BacklogValue)
		assert.Equal(t, map[parcel.Buffer]int{parcel.BufferRTS: 0, parcel.BufferEHA: 0, parcel.BufferSAL: 0}, m.Counts)
		assert.Equal(t, map[parcel.Buffer]float64{parcel.BufferRTS: 0, parcel.BufferEHA: 0}, m.AvgWaitSeconds)
	})

	t.Run("should aggregate backlog without SAL", func(t *testing.T) {
		m := calc.Calculate([]services.QueuedParcel{
			{Buffer: parcel.BufferRTS, Profile: parcel.ProfileP, EntryTimestamp: ago(10 * time.Minute)},
			{Buffer: parcel.BufferRTS, Profile: parcel.ProfileG, EntryTimestamp: ago(20 * time.Minute)},
			{Buffer: parcel.BufferEHA, Profile: parcel.ProfileM, EntryTimestamp: ago(time.Hour)},
			{Buffer: parcel.BufferSAL, Profile: parcel.ProfileNotApplicable, EntryTimestamp: ago(time.Hour)},
		}, now)

		assert.Equal(t, 3, m.BacklogCount)
		assert.Equal(t, 250+10+80, m.BacklogValue)
		assert.Equal(t, 2, m.Counts[parcel.BufferRTS])
		assert.Equal(t, 1, m.Counts[parcel.BufferEHA])
		assert.Equal(t, 1, m.Counts[parcel.BufferSAL])
		assert.Equal(t, 260, m.Values[parcel.BufferRTS])
		assert.Equal(t, 0, m.Values[parcel.BufferSAL])
		assert.InDelta(t, 900.0, m.AvgWaitSeconds[parcel.BufferRTS], 1e-9)
		assert.InDelta(t, 3600.0, m.AvgWaitSeconds[parcel.BufferEHA], 1e-9)
		assert.NotContains(t, m.AvgWaitSeconds, parcel.BufferSAL)
	})

	t.Run("should ignore missing and future entry timestamps in averages", func(t *testing.T) {
		future := now.Add(time.Minute)

		m := calc.Calculate([]services.QueuedParcel{
			{Buffer: parcel.BufferEHA, Profile: parcel.ProfileG, EntryTimestamp: nil},
			{Buffer: parcel.BufferEHA, Profile: parcel.ProfileG, EntryTimestamp: &future},
			{Buffer: parcel.BufferEHA, Profile: parcel.ProfileG, EntryTimestamp: ago(2 * time.Minute)},
		}, now)

		assert.Equal(t, 3, m.Counts[parcel.BufferEHA])
		assert.InDelta(t, 120.0, m.AvgWaitSeconds[parcel.BufferEHA], 1e-9)
		assert.Zero(t, m.AvgWaitSeconds[parcel.BufferRTS])
	})

	t.Run("should skip pending placeholders", func(t *testing.T) {
		m := calc.Calculate([]services.QueuedParcel{
			{Buffer: parcel.BufferPending, Profile: parcel.ProfileNotApplicable},
		}, now)

		assert.Equal(t, 0, m.BacklogCount)
		assert.NotContains(t, m.Counts, parcel.BufferPending)
	})
}
