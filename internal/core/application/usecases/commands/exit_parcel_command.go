package commands

import (
	"errors"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/guard"
)

var (
	ErrExitParcelCommandIsNotConstructed = errors.New(
		"ExitParcelCommand must be created via NewExitParcelCommand constructor",
	)
	ErrExitParcelByTrackingIDCommandIsNotConstructed = errors.New(
		"ExitParcelByTrackingIDCommand must be created via NewExitParcelByTrackingIDCommand constructor",
	)
)

// ExitParcelCommand removes an active parcel addressed by its internal id.
type ExitParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewExitParcelCommand(parcelID kernel.UUID) (ExitParcelCommand, error) {
	if err := parcelID.Validate(); err != nil {
		return ExitParcelCommand{}, err
	}

	return ExitParcelCommand{
		parcelID: parcelID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ExitParcelCommand) Validate() error {
	return c.guard.Validate(ErrExitParcelCommandIsNotConstructed)
}

func (c ExitParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// ExitParcelByTrackingIDCommand removes an active parcel addressed by the
// scanned label, as done at the outbound dock.
type ExitParcelByTrackingIDCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewExitParcelByTrackingIDCommand(trackingID string) (ExitParcelByTrackingIDCommand, error) {
	id, err := kernel.NewTrackingID(trackingID)
	if err != nil {
		return ExitParcelByTrackingIDCommand{}, err
	}

	return ExitParcelByTrackingIDCommand{
		trackingID: id,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ExitParcelByTrackingIDCommand) Validate() error {
	return c.guard.Validate(ErrExitParcelByTrackingIDCommandIsNotConstructed)
}

func (c ExitParcelByTrackingIDCommand) TrackingID() kernel.TrackingID {
	return c.trackingID
}
