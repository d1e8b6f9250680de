package services

import (
	"context"
	"fmt"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/errs"
)

// TrackingIDCeiling is the last counter value the allocator will try. It is the
// largest counter that still fits the six digits of a sequential label.
const TrackingIDCeiling = 999_999

// TrackingIDExistenceChecker reports whether any stored row, removed or not,
// already carries the tracking ID.
type TrackingIDExistenceChecker interface {
	ExistsGlobal(ctx context.Context, trackingID kernel.TrackingID) (bool, error)
}

// TrackingIDAllocator proposes the lowest free sequential labels.
//
// Candidates CG000001, CG000002, ... are tried in order and every candidate
// known to the store is skipped, so labels are never reused. Allocation stops
// early, without an error, once the counter passes the ceiling; callers get
// fewer labels than requested in that case.
//
// The allocator only reads. Two concurrent callers may be offered the same
// labels; the batch that confirms second fails as a whole.
type TrackingIDAllocator struct {
	ceiling int
}

func NewTrackingIDAllocator() TrackingIDAllocator {
	return TrackingIDAllocator{ceiling: TrackingIDCeiling}
}

// NewTrackingIDAllocatorWithCeiling is used by tests that exercise exhaustion.
func NewTrackingIDAllocatorWithCeiling(ceiling int) TrackingIDAllocator {
	return TrackingIDAllocator{ceiling: ceiling}
}

func (a TrackingIDAllocator) Allocate(
	ctx context.Context,
	quantity int,
	checker TrackingIDExistenceChecker,
) ([]kernel.TrackingID, error) {
	ceiling := a.ceiling
	if ceiling <= 0 || ceiling > TrackingIDCeiling {
		ceiling = TrackingIDCeiling
	}

	if quantity <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, ceiling)
	}

	ids := make([]kernel.TrackingID, 0, min(quantity, ceiling))
	for counter := 1; len(ids) < quantity && counter <= ceiling; counter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := kernel.SequentialTrackingID(counter)
		exists, err := checker.ExistsGlobal(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("check tracking ID %s: %w", candidate, err)
		}
		if exists {
			continue
		}
		ids = append(ids, candidate)
	}

	return ids, nil
}
