// Package commands contains the operations that change the queue.
// Every command is validated by its constructor and handled inside one unit of work.
package commands

import (
	"context"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of one command.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	AuditRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	// ParcelUoW is used by commands that only write parcels, such as label reservation.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// AuditUoW is used by commands that only append audit entries.
	AuditUoW interface {
		TxManager
		AuditRepoFactory
	}

	AuditUoWFactory interface {
		Create() AuditUoW
	}

	// UoW binds a parcel change and its audit entry to one transaction.
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   p, err := uow.ParcelRepository().GetForUpdate(ctx, id)
	//   // ... mutate p, record the audit entry through uow.AuditLogRepository()
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		ParcelRepoFactory
		AuditRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}

	// AuditRecorder writes an attributed audit entry through the given repository.
	AuditRecorder interface {
		Record(ctx context.Context, repo ports.AuditLogRepository, action audit.Action, details string) error
	}
)
