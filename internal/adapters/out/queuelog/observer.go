// Package queuelog reports committed queue changes to the service log.
package queuelog

import (
	"context"
	"log/slog"

	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/core/ports"
)

var _ ports.QueueObserver = (*Observer)(nil)

type Observer struct {
	logger *slog.Logger
}

func NewObserver(logger *slog.Logger) *Observer {
	return &Observer{logger: logger.With("component", "queue_observer")}
}

// QueueChanged logs one line per parcel with its state after the commit.
func (o *Observer) QueueChanged(ctx context.Context, parcels []*parcel.Parcel) {
	for _, p := range parcels {
		o.logger.InfoContext(ctx, "Queue changed",
			"parcel_id", p.ID().String(),
			"tracking_id", p.TrackingID().String(),
			"state", p.State().String(),
			"buffer", p.Buffer().String(),
			"lane", p.Lane(),
		)
	}
}
