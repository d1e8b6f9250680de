package commands

import (
	"context"
)

// RecordAuditEntryCommandHandler stores a standalone audit entry in its own transaction.
type RecordAuditEntryCommandHandler struct {
	uowFactory AuditUoWFactory
	recorder   AuditRecorder
}

func NewRecordAuditEntryCommandHandler(uowFactory AuditUoWFactory, recorder AuditRecorder) RecordAuditEntryCommandHandler {
	return RecordAuditEntryCommandHandler{
		uowFactory: uowFactory,
		recorder:   recorder,
	}
}

func (h *RecordAuditEntryCommandHandler) Handle(ctx context.Context, cmd RecordAuditEntryCommand) error {
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

	if err := h.recorder.Record(ctx, uow.AuditLogRepository(), cmd.Action(), cmd.Details()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
