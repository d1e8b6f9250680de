package commands

import (
	"errors"
	"strings"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

var ErrMoveParcelCommandIsNotConstructed = errors.New(
	"MoveParcelCommand must be created via NewMoveParcelCommand constructor",
)

// MoveParcelCommand relocates an active parcel to another lane.
type MoveParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID kernel.UUID
	lane     string

	guard guard.ConstructorGuard
}

func NewMoveParcelCommand(parcelID kernel.UUID, lane string) (MoveParcelCommand, error) {
	cmd := MoveParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setLane(lane),
	); err != nil {
		return MoveParcelCommand{}, err
	}

	return cmd, nil
}

func (c MoveParcelCommand) Validate() error {
	return c.guard.Validate(ErrMoveParcelCommandIsNotConstructed)
}

func (c MoveParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c MoveParcelCommand) Lane() string {
	return c.lane
}

func (c *MoveParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *MoveParcelCommand) setLane(lane string) error {
	lane = strings.TrimSpace(lane)
	if lane == "" {
		return errs.NewValueIsRequiredError("lane")
	}
	c.lane = lane
	return nil
}
