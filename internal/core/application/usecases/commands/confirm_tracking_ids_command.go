package commands

import (
	"errors"
	"fmt"

	"fifo/internal/core/domain/model/kernel"
	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

var ErrConfirmTrackingIDsCommandIsNotConstructed = errors.New(
	"ConfirmTrackingIDsCommand must be created via NewConfirmTrackingIDsCommand constructor",
)

// ConfirmTrackingIDsCommand reserves printed labels as pending placeholders.
// The list must be non-empty, and every label valid and distinct.
type ConfirmTrackingIDsCommand struct { //nolint:recvcheck //using for validation
	trackingIDs []kernel.TrackingID

	guard guard.ConstructorGuard
}

func NewConfirmTrackingIDsCommand(raw []string) (ConfirmTrackingIDsCommand, error) {
	if len(raw) == 0 {
		return ConfirmTrackingIDsCommand{}, errs.NewValueIsRequiredError("trackingIDs")
	}

	var (
		ids     = make([]kernel.TrackingID, 0, len(raw))
		seen    = make(map[string]struct{}, len(raw))
		errList []error
	)
	for i, r := range raw {
		id, err := kernel.NewTrackingID(r)
		if err != nil {
			errList = append(errList, fmt.Errorf("trackingIDs[%d]: %w", i, err))
			continue
		}
		if _, dup := seen[id.String()]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				"trackingIDs", fmt.Errorf("%s is listed more than once", id)))
			continue
		}
		seen[id.String()] = struct{}{}
		ids = append(ids, id)
	}

	if err := errors.Join(errList...); err != nil {
		return ConfirmTrackingIDsCommand{}, err
	}

	return ConfirmTrackingIDsCommand{
		trackingIDs: ids,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmTrackingIDsCommand) Validate() error {
	return c.guard.Validate(ErrConfirmTrackingIDsCommandIsNotConstructed)
}

// TrackingIDs returns a copy of the labels in request order.
func (c ConfirmTrackingIDsCommand) TrackingIDs() []kernel.TrackingID {
	return append([]kernel.TrackingID(nil), c.trackingIDs...)
}
