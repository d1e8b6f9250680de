package commands

import (
	"context"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/domain/model/parcel"
)

// MoveParcelCommandHandler changes the lane of an active parcel.
// Moving to the lane the parcel already occupies changes nothing and is not audited.
type MoveParcelCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
}

func NewMoveParcelCommandHandler(uowFactory UoWFactory, recorder AuditRecorder) MoveParcelCommandHandler {
	return MoveParcelCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h *MoveParcelCommandHandler) Handle(ctx context.Context, cmd MoveParcelCommand) (*parcel.Parcel, error) {
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
	p, err := parcelRepo.GetForUpdate(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	fromLane := p.Lane()
	moved, err := p.Move(cmd.Lane())
	if err != nil {
		return nil, err
	}
	if !moved {
		return p, nil
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = h.recorder.Record(ctx, uow.AuditLogRepository(), audit.ActionMove, audit.MoveDetails(p, fromLane)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
