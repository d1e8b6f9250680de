package commands

import (
	"context"
	"errors"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/pkg/errs"
)

// EnterParcelCommandHandler registers a cage in the queue.
//
// The global row for the tracking ID is locked first. Depending on its state
// the handler creates a new row, activates a pending placeholder or reuses a
// removed row. A live row is reported as errs.ObjectAlreadyExistsError; so is
// an insert that loses a race, through the store's unique index on live rows.
type EnterParcelCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
	clock      kernel.Clock
}

func NewEnterParcelCommandHandler(
	uowFactory UoWFactory,
	recorder AuditRecorder,
	clock kernel.Clock,
) EnterParcelCommandHandler {
	return EnterParcelCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
		clock:      clock,
	}
}

func (h *EnterParcelCommandHandler) Handle(ctx context.Context, cmd EnterParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcelRepo := uow.ParcelRepository()
	now := h.clock.Now()

	p, err := parcelRepo.FindGlobalForUpdate(ctx, cmd.TrackingID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if p, err = parcel.NewParcel(kernel.NewUUID(), cmd.TrackingID(), cmd.Placement(), now); err != nil {
			return nil, err
		}
		if err = parcelRepo.Add(ctx, p); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err = p.Enter(cmd.Placement(), now); err != nil {
			return nil, err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	if err = h.recorder.Record(ctx, uow.AuditLogRepository(), audit.ActionEntry, audit.EntryDetails(p)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
