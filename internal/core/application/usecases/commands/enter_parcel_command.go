package commands

import (
	"errors"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/core/domain/model/parcel"
	"fifo/internal/pkg/guard"
)

var ErrEnterParcelCommandIsNotConstructed = errors.New(
	"EnterParcelCommand must be created via NewEnterParcelCommand constructor",
)

// EnterParcelCommand puts a scanned cage into a buffer lane.
//
// All input rules are checked here, before any transaction is opened:
//
//	cmd, err := NewEnterParcelCommand("cg000042", "RTS", "R-03", "P")
//	if err != nil {
//	    // validation error, nothing was written
//	}
//	p, err := handler.Handle(ctx, cmd)
type EnterParcelCommand struct { //nolint:recvcheck //using for validation
	trackingID kernel.TrackingID
	placement  parcel.Placement

	guard guard.ConstructorGuard
}

// NewEnterParcelCommand parses the raw request. profile may be empty for SAL.
func NewEnterParcelCommand(trackingID, buffer, lane, profile string) (EnterParcelCommand, error) {
	cmd := EnterParcelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingID(trackingID),
		cmd.setPlacement(buffer, lane, profile),
	); err != nil {
		return EnterParcelCommand{}, err
	}

	return cmd, nil
}

func (c EnterParcelCommand) Validate() error {
	return c.guard.Validate(ErrEnterParcelCommandIsNotConstructed)
}

func (c EnterParcelCommand) TrackingID() kernel.TrackingID {
	return c.trackingID
}

func (c EnterParcelCommand) Placement() parcel.Placement {
	return c.placement
}

func (c *EnterParcelCommand) setTrackingID(raw string) error {
	id, err := kernel.NewTrackingID(raw)
	if err != nil {
		return err
	}
	c.trackingID = id
	return nil
}

func (c *EnterParcelCommand) setPlacement(rawBuffer, lane, rawProfile string) error {
	buffer, err := parcel.ParseBuffer(rawBuffer)
	if err != nil {
		return err
	}

	profile, err := parcel.ParseProfile(rawProfile)
	if err != nil && buffer != parcel.BufferSAL {
		return err
	}

	placement, err := parcel.NewPlacement(buffer, lane, profile)
	if err != nil {
		return err
	}
	c.placement = placement
	return nil
}
