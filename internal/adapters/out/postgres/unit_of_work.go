// Package postgres implements the unit of work over GORM.
//
// One GormUnitOfWork is one transaction. Repositories handed out after Begin
// run inside it; repositories handed out before Begin use the plain connection.
// Parcels written through the unit of work are tracked and, once the
// transaction commits, reported to the QueueObserver:
//
//	factory := NewGormUnitOfWorkFactory(db, observer)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.ParcelRepository().Add(ctx, p); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"

	"fifo/internal/adapters/out/postgres/auditrepo"
	"fifo/internal/adapters/out/postgres/parcelrepo"
	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/core/ports"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	observer ports.QueueObserver
}

// NewGormUnitOfWorkFactory creates the factory. observer may be nil.
func NewGormUnitOfWorkFactory(db *gorm.DB, observer ports.QueueObserver) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, observer: observer}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type, for callers outside the use cases.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		observer:          f.observer,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	observer          ports.QueueObserver
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. A second call while one is active does nothing.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Commit ends the transaction and then notifies the observer of the parcels it wrote.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.notify(ctx)
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) AuditLogRepository() ports.AuditLogRepository {
	return auditrepo.NewGormAuditLogRepository(uow.conn())
}

// TrackAggregate is called by the repositories for every aggregate they write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedParcels returns the parcels written since Begin, each once, in first-write order.
func (uow *GormUnitOfWork) TrackedParcels() []*parcel.Parcel {
	seen := make(map[kernel.UUID]int, len(uow.trackedAggregates))
	parcels := make([]*parcel.Parcel, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		p, ok := tracked.Aggregate.(*parcel.Parcel)
		if !ok {
			continue
		}
		if i, dup := seen[tracked.ID]; dup {
			parcels[i] = p
			continue
		}
		seen[tracked.ID] = len(parcels)
		parcels = append(parcels, p)
	}
	return parcels
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) notify(ctx context.Context) {
	parcels := uow.TrackedParcels()
	uow.trackedAggregates = uow.trackedAggregates[:0]
	if uow.observer == nil || len(parcels) == 0 {
		return
	}
	uow.observer.QueueChanged(ctx, parcels)
}
