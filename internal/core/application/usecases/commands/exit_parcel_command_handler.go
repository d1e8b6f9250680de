package commands

import (
	"context"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/pkg/errs"
)

// ExitParcelCommandHandler soft-removes active parcels.
//
// Pending placeholders and already removed parcels cannot be addressed by id
// and are reported as errs.ObjectNotFoundError. When addressed by tracking ID a
// removed parcel is reported as errs.ObjectAlreadyRemovedError instead, so the
// operator can tell a double scan from an unknown label.
type ExitParcelCommandHandler struct {
	uowFactory UoWFactory
	recorder   AuditRecorder
	clock      kernel.Clock
}

func NewExitParcelCommandHandler(
	uowFactory UoWFactory,
	recorder AuditRecorder,
	clock kernel.Clock,
) ExitParcelCommandHandler {
	return ExitParcelCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
		clock:      clock,
	}
}

// Handle removes the parcel with the command's id.
func (h *ExitParcelCommandHandler) Handle(ctx context.Context, cmd ExitParcelCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().GetForUpdate(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	if err = h.exit(ctx, uow, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// HandleByTrackingID removes the live parcel carrying the command's label.
func (h *ExitParcelCommandHandler) HandleByTrackingID(ctx context.Context, cmd ExitParcelByTrackingIDCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().FindGlobalForUpdate(ctx, cmd.TrackingID())
	if err != nil {
		return err
	}

	switch p.State() {
	case parcel.StateDeleted:
		return errs.NewObjectAlreadyRemovedError("trackingID", cmd.TrackingID().String())
	case parcel.StatePending, parcel.StateUnknown:
		return errs.NewObjectNotFoundError("trackingID", cmd.TrackingID().String())
	case parcel.StateActive:
	}

	if err = h.exit(ctx, uow, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ExitParcelCommandHandler) exit(ctx context.Context, uow UoW, p *parcel.Parcel) error {
	details := audit.ExitDetails(p)

	if err := p.Exit(h.clock.Now()); err != nil {
		return err
	}

	if err := uow.ParcelRepository().SoftDelete(ctx, p); err != nil {
		return err
	}

	return h.recorder.Record(ctx, uow.AuditLogRepository(), audit.ActionExit, details)
}
