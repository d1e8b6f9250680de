package queries

import (
	"context"
	"time"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListActiveParcelsQueryHandler struct {
	db *gorm.DB
}

func NewListActiveParcelsQueryHandler(db *gorm.DB) ListActiveParcelsQueryHandler {
	return ListActiveParcelsQueryHandler{db: db}
}

func (h ListActiveParcelsQueryHandler) Handle(
	ctx context.Context,
	query ListActiveParcelsQuery,
) ([]ActiveParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]ActiveParcelResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_id,
			buffer,
			lane,
			profile,
			entry_timestamp,
			created_at,
			updated_at
		FROM parcels
		WHERE deleted_at IS NULL AND buffer <> ?
		ORDER BY entry_timestamp ASC, created_at ASC
	`, parcel.BufferPending.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item    ActiveParcelResponse
			id      uuid.UUID
			entered *time.Time
		)

		err = rows.Scan(
			&id,
			&item.TrackingID,
			&item.Buffer,
			&item.Lane,
			&item.Profile,
			&entered,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		profile, profileErr := parcel.ParseProfile(item.Profile)
		if profileErr != nil {
			return nil, profileErr
		}
		item.ProfileValue = profile.Value()
		item.EntryTimestamp = entered

		parcels = append(parcels, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
