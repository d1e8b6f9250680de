package parcelrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	uniqueViolation = "23505"
	batchSize       = 100
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

// NewGormParcelRepository creates a repository bound to db, which may be a transaction.
// A nil tracker is allowed for read-only use.
func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	if tracker == nil {
		tracker = noopTracker{}
	}
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormParcelRepository) ExistsGlobal(ctx context.Context, trackingID kernel.TrackingID) (bool, error) {
	if err := trackingID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("tracking_id = ?", trackingID.String()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormParcelRepository) FindGlobal(ctx context.Context, trackingID kernel.TrackingID) (*parcel.Parcel, error) {
	return r.findGlobal(ctx, r.db, trackingID)
}

func (r *GormParcelRepository) FindGlobalForUpdate(
	ctx context.Context,
	trackingID kernel.TrackingID,
) (*parcel.Parcel, error) {
	return r.findGlobal(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), trackingID)
}

func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(ctx, r.db, id)
}

func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return r.translate(err, dto.TrackingID)
	}

	aggregate.SetPersistedTimestamps(dto.CreatedAt, dto.UpdatedAt)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) AddBatch(ctx context.Context, aggregates []*parcel.Parcel) error {
	if len(aggregates) == 0 {
		return nil
	}

	dtos := make([]ParcelDTO, 0, len(aggregates))
	for i, aggregate := range aggregates {
		if err := aggregate.Validate(); err != nil {
			return fmt.Errorf("parcel %d: %w", i, err)
		}
		dtos = append(dtos, fromDomain(aggregate))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&dtos, batchSize).Error
	})
	if err != nil {
		return errs.NewBatchPersistenceError(len(aggregates), r.translate(err, "batch"))
	}

	for i, aggregate := range aggregates {
		aggregate.SetPersistedTimestamps(dtos[i].CreatedAt, dtos[i].UpdatedAt)
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
	return nil
}

func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	// Model and values share dto so that GORM writes the new updated_at back into it.
	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&dto).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return r.translate(result.Error, dto.TrackingID)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	aggregate.SetPersistedTimestamps(time.Time{}, dto.UpdatedAt)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) SoftDelete(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.DeletedAt() == nil {
		return errs.NewValueIsRequiredError("deletedAt")
	}

	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ? AND deleted_at IS NULL", aggregate.ID().Bytes()).
		Update("deleted_at", *aggregate.DeletedAt())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("parcel", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) findGlobal(
	ctx context.Context,
	db *gorm.DB,
	trackingID kernel.TrackingID,
) (*parcel.Parcel, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := db.WithContext(ctx).
		Where("tracking_id = ?", trackingID.String()).
		Order("deleted_at IS NULL DESC").
		Order("updated_at DESC").
		Take(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("trackingID", trackingID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	if err := db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// translate reports a violated live-row unique index as errs.ObjectAlreadyExistsError.
func (r *GormParcelRepository) translate(err error, trackingID string) error {
	if isUniqueViolation(err) {
		return errs.NewObjectAlreadyExistsErrorWithCause("trackingID", trackingID, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
