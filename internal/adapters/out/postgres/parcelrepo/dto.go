// Package parcelrepo maps the parcel aggregate to the parcels table.
package parcelrepo

import (
	"time"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is one row of the parcels table. DeletedAt is a plain pointer
// rather than gorm.DeletedAt so that no query gets an implicit scope.
type ParcelDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingID     string     `gorm:"column:tracking_id;size:64;not null"`
	Buffer         string     `gorm:"column:buffer;size:16;not null"`
	Lane           string     `gorm:"column:lane;size:64;not null"`
	Profile        string     `gorm:"column:profile;size:8;not null"`
	EntryTimestamp *time.Time `gorm:"column:entry_timestamp"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      *time.Time `gorm:"column:deleted_at"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	return ParcelDTO{
		ID:             p.ID().Bytes(),
		TrackingID:     p.TrackingID().String(),
		Buffer:         p.Buffer().String(),
		Lane:           p.Lane(),
		Profile:        p.Profile().String(),
		EntryTimestamp: p.EntryTimestamp(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
		DeletedAt:      p.DeletedAt(),
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := kernel.NewTrackingID(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	buffer, err := parcel.ParseBuffer(dto.Buffer)
	if err != nil {
		return nil, err
	}

	profile, err := parcel.ParseProfile(dto.Profile)
	if err != nil {
		return nil, err
	}

	return parcel.RestoreParcel(
		id,
		trackingID,
		buffer,
		dto.Lane,
		profile,
		dto.EntryTimestamp,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.DeletedAt,
	)
}
