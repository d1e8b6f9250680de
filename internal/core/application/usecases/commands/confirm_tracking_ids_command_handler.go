package commands

import (
	"context"
	"errors"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/pkg/errs"
)

// ConfirmTrackingIDsCommandHandler stores pending placeholders for a batch of
// labels. The batch is all-or-nothing: any failure, a label confirmed
// concurrently included, is reported as errs.BatchPersistenceError and nothing
// is stored.
type ConfirmTrackingIDsCommandHandler struct {
	uowFactory ParcelUoWFactory
}

func NewConfirmTrackingIDsCommandHandler(uowFactory ParcelUoWFactory) ConfirmTrackingIDsCommandHandler {
	return ConfirmTrackingIDsCommandHandler{uowFactory: uowFactory}
}

func (h *ConfirmTrackingIDsCommandHandler) Handle(ctx context.Context, cmd ConfirmTrackingIDsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ids := cmd.TrackingIDs()
	placeholders := make([]*parcel.Parcel, 0, len(ids))
	for _, id := range ids {
		p, err := parcel.NewPendingParcel(kernel.NewUUID(), id)
		if err != nil {
			return err
		}
		placeholders = append(placeholders, p)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ParcelRepository().AddBatch(ctx, placeholders); err != nil {
		return asBatchError(len(placeholders), err)
	}

	if err := uow.Commit(ctx); err != nil {
		return asBatchError(len(placeholders), err)
	}

	return nil
}

func asBatchError(size int, err error) error {
	var batchErr *errs.BatchPersistenceError
	if errors.As(err, &batchErr) {
		return err
	}
	return errs.NewBatchPersistenceError(size, err)
}
