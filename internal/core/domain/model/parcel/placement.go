package parcel

import (
	"errors"
	"fmt"
	"strings"

	"fifo/internal/pkg/errs"
	"fifo/internal/pkg/guard"
)

// UndefinedLane is the lane stored on pending placeholders.
const UndefinedLane = "undefined"

var ErrPlacementIsNotConstructed = errs.NewValueIsRequiredError("placement must be created via NewPlacement")

// Placement is where an active parcel sits: buffer, lane and size profile.
//
// NewPlacement applies the entry rules before anything is persisted:
//   - buffer must be RTS, EHA or SAL
//   - lane is required
//   - RTS and EHA require a P, M or G profile
//   - SAL forces the N/A profile, whatever was requested
type Placement struct {
	buffer  Buffer
	lane    string
	profile Profile
	guard   guard.ConstructorGuard
}

func NewPlacement(buffer Buffer, lane string, profile Profile) (Placement, error) {
	lane = strings.TrimSpace(lane)

	var errList []error
	if err := buffer.ValidateForEntry(); err != nil {
		errList = append(errList, err)
	}
	if lane == "" {
		errList = append(errList, errs.NewValueIsRequiredError("lane"))
	}

	switch {
	case buffer == BufferSAL:
		profile = ProfileNotApplicable
	case !buffer.RequiresProfile():
	case profile == ProfileUnspecified:
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(
			"profile", fmt.Errorf("buffer %s requires a profile", buffer)))
	case !profile.IsSizeClass():
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"profile", fmt.Errorf("%s is not allowed for buffer %s", profile, buffer)))
	}

	if err := errors.Join(errList...); err != nil {
		return Placement{}, err
	}

	return Placement{
		buffer:  buffer,
		lane:    lane,
		profile: profile,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func pendingPlacement() Placement {
	return Placement{
		buffer:  BufferPending,
		lane:    UndefinedLane,
		profile: ProfileNotApplicable,
		guard:   guard.NewConstructorGuard(),
	}
}

func (p Placement) Buffer() Buffer {
	return p.buffer
}

func (p Placement) Lane() string {
	return p.lane
}

func (p Placement) Profile() Profile {
	return p.profile
}

func (p Placement) Validate() error {
	return p.guard.Validate(ErrPlacementIsNotConstructed)
}
